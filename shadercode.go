package shade

import "sync"

// ShaderCode is the surface a cached texture handle can reach on its
// owning shader object. The registry uses it to request re-derivation
// of shader resources when a texture it handed out is later replaced
// (for example when the asset finishes loading). It never extends the
// owner's lifetime.
type ShaderCode interface {
	// MarkTexturesStale tells the shader object that one of its
	// texture handles changed underneath it and derived state
	// (bind group layouts, buffer sources) must be recomputed.
	MarkTexturesStale()
}

// ShaderCodeRef is a non-owning reference to a ShaderCode registered
// in a ShaderTable: a slot index plus a generation counter. A ref
// whose generation no longer matches the slot simply fails to
// resolve, which is the desired behavior for a weak back-reference.
//
// The zero value is invalid and resolves to nothing.
type ShaderCodeRef struct {
	Index      uint32
	Generation uint32
}

// Valid reports whether the ref was produced by a ShaderTable.
// Generations start at 1, so the zero value is never valid.
func (r ShaderCodeRef) Valid() bool {
	return r.Generation != 0
}

type shaderSlot struct {
	code       ShaderCode
	generation uint32
}

// ShaderTable maps ShaderCodeRefs to live shader objects. Slots are
// recycled; each reuse bumps the slot generation so stale refs held
// by cached texture handles cannot resolve to the new occupant.
//
// All methods are safe for concurrent use.
type ShaderTable struct {
	mu    sync.Mutex
	slots []shaderSlot
	free  []uint32
}

// NewShaderTable creates an empty shader table.
func NewShaderTable() *ShaderTable {
	return &ShaderTable{}
}

// Register adds a shader object and returns its reference.
func (t *ShaderTable) Register(code ShaderCode) ShaderCodeRef {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		slot := &t.slots[idx]
		slot.code = code
		slot.generation++
		return ShaderCodeRef{Index: idx, Generation: slot.generation}
	}

	t.slots = append(t.slots, shaderSlot{code: code, generation: 1})
	return ShaderCodeRef{Index: uint32(len(t.slots) - 1), Generation: 1}
}

// Unregister releases the slot behind ref. Outstanding refs to the
// slot become stale; resolving them returns false from then on.
func (t *ShaderTable) Unregister(ref ShaderCodeRef) {
	if !ref.Valid() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(ref.Index) >= len(t.slots) {
		return
	}
	slot := &t.slots[ref.Index]
	if slot.generation != ref.Generation || slot.code == nil {
		return
	}
	slot.code = nil
	t.free = append(t.free, ref.Index)
}

// Lookup resolves ref to the registered shader object.
// Returns (nil, false) for stale, unregistered or zero refs.
func (t *ShaderTable) Lookup(ref ShaderCodeRef) (ShaderCode, bool) {
	if !ref.Valid() {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(ref.Index) >= len(t.slots) {
		return nil, false
	}
	slot := t.slots[ref.Index]
	if slot.generation != ref.Generation || slot.code == nil {
		return nil, false
	}
	return slot.code, true
}
