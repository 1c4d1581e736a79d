package shade

import "testing"

type stubShaderCode struct {
	stale int
}

func (s *stubShaderCode) MarkTexturesStale() { s.stale++ }

func TestShaderTableRegisterLookup(t *testing.T) {
	table := NewShaderTable()
	code := &stubShaderCode{}

	ref := table.Register(code)
	if !ref.Valid() {
		t.Fatal("Register returned invalid ref")
	}

	got, ok := table.Lookup(ref)
	if !ok {
		t.Fatal("Lookup failed for live ref")
	}
	if got != code {
		t.Error("Lookup returned wrong shader code")
	}
}

func TestShaderTableZeroRefInvalid(t *testing.T) {
	table := NewShaderTable()

	var zero ShaderCodeRef
	if zero.Valid() {
		t.Error("zero ref must not be valid")
	}
	if _, ok := table.Lookup(zero); ok {
		t.Error("Lookup of zero ref must fail")
	}
}

func TestShaderTableUnregisterMakesRefStale(t *testing.T) {
	table := NewShaderTable()
	ref := table.Register(&stubShaderCode{})

	table.Unregister(ref)
	if _, ok := table.Lookup(ref); ok {
		t.Error("Lookup of unregistered ref must fail")
	}

	// Unregistering twice is a no-op.
	table.Unregister(ref)
}

func TestShaderTableSlotReuseBumpsGeneration(t *testing.T) {
	table := NewShaderTable()

	first := table.Register(&stubShaderCode{})
	table.Unregister(first)

	second := table.Register(&stubShaderCode{})
	if second.Index != first.Index {
		t.Fatalf("expected slot reuse, got index %d then %d", first.Index, second.Index)
	}
	if second.Generation == first.Generation {
		t.Error("slot reuse must bump the generation")
	}

	// The stale ref must not resolve to the new occupant.
	if _, ok := table.Lookup(first); ok {
		t.Error("stale ref resolved after slot reuse")
	}
	if _, ok := table.Lookup(second); !ok {
		t.Error("fresh ref failed to resolve")
	}
}
