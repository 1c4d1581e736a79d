// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "sync"

// Handle unites one texture object and one sampler object. Handles
// allocated from the registry are shared: materials requesting
// identical (id, type, sampler parameters, bindless flag) receive
// the same handle, and the registry keeps at most one resident
// handle per key. Fallback handles bypass the registry and are owned
// by a single material.
//
// The registry tracks which shader objects requested the handle
// through non-owning shade.ShaderCodeRefs kept on the registry
// entry, so a handle itself never keeps a shader alive.
type Handle struct {
	mu      sync.RWMutex
	object  Object
	sampler Sampler

	memoryRequest uint64

	// release returns one reference to the registry entry. Invoked
	// once per acquisition; the registry clamps the count at zero.
	// Nil for handles not owned by a registry (fallback textures).
	release func()
}

// NewHandle builds a handle. The release func may be nil for
// material-private handles that bypass the registry.
func NewHandle(object Object, sampler Sampler, memoryRequest uint64, release func()) *Handle {
	return &Handle{
		object:        object,
		sampler:       sampler,
		memoryRequest: memoryRequest,
		release:       release,
	}
}

// Object returns the texture object.
func (h *Handle) Object() Object {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.object
}

// SetObject swaps the texture object. Called by the registry when
// texel data is committed for the handle's content key; referencing
// shaders are notified through the registry, not here.
func (h *Handle) SetObject(o Object) {
	h.mu.Lock()
	h.object = o
	h.mu.Unlock()
}

// SetSampler swaps the sampler object. Used together with SetObject
// when committed texel data arrives with realized sampler state
// (bindless handles in particular).
func (h *Handle) SetSampler(s Sampler) {
	h.mu.Lock()
	h.sampler = s
	h.mu.Unlock()
}

// Sampler returns the sampler object.
func (h *Handle) Sampler() Sampler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sampler
}

// MemoryRequest returns the memory budget hint, in bytes, supplied
// when the handle was allocated.
func (h *Handle) MemoryRequest() uint64 { return h.memoryRequest }

// Release returns one reference to the handle's registry entry.
// Each acquisition through the registry must be balanced by exactly
// one Release; the last release makes the entry collectable.
// Releasing a registry-less handle is a no-op.
func (h *Handle) Release() {
	if h.release != nil {
		h.release()
	}
}

// NamedHandle associates a shader input name with a texture handle
// for buffer-layout and binding purposes. It does not own the handle.
type NamedHandle struct {
	Name   string
	Type   Type
	Handle *Handle
}
