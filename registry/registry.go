// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package registry deduplicates texture resources across materials.
//
// It owns three resident tables:
//   - texture resources, keyed by global content key (legacy path)
//   - texture resource handles, keyed by (scope, connection path)
//   - texture handles, keyed by (id, type, sampler params, bindless)
//
// Lookups and allocations are safe for concurrent use from the sync
// pass. Allocation of the same handle key is coalesced: the first
// requester constructs, concurrent requesters wait on a per-entry
// latch and share the result, so at most one construction is in
// flight per key.
package registry

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/texture"
	"github.com/gogpu/wgpu/hal"
)

// TextureKey is a globally scoped key for the legacy resource and
// resource-handle tables. It folds the owning scope (render index)
// into the key so identical assets in different render indexes do
// not alias.
type TextureKey uint64

// ResourceKey derives the global key for a texture content id within
// a scope.
func ResourceKey(scope uint64, id texture.ID) TextureKey {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], scope)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(id))
	_, _ = h.Write(buf[:])
	return TextureKey(h.Sum64())
}

// HandlePathKey derives the global key for a texture connection path
// within a scope. Resource handles are shared per connection, not
// per content, so a swapped asset reaches every referencing material.
func HandlePathKey(scope uint64, connection string) TextureKey {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], scope)
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(connection))
	return TextureKey(h.Sum64())
}

// HandleKey identifies a shareable texture handle. Two allocation
// requests with equal keys receive the same handle; requests
// differing in any field receive distinct handles.
type HandleKey struct {
	ID       texture.ID
	Type     texture.Type
	Sampler  texture.SamplerParameters
	Bindless bool
}

func hashHandleKey(k HandleKey) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k.ID))
	_, _ = h.Write(buf[:])
	flags := uint64(k.Type)<<1 | boolBit(k.Bindless)
	binary.LittleEndian.PutUint64(buf[:], flags)
	_, _ = h.Write(buf[:])
	s := k.Sampler
	for _, v := range [6]uint32{
		uint32(s.WrapS), uint32(s.WrapT), uint32(s.WrapR),
		uint32(s.MinFilter), uint32(s.MagFilter), uint32(s.MipFilter),
	} {
		binary.LittleEndian.PutUint32(buf[:4], v)
		_, _ = h.Write(buf[:4])
	}
	return h.Sum64()
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// handleEntry is one resident texture handle plus its bookkeeping.
// done is closed once construction finished; concurrent requesters
// for the same key block on it instead of constructing a duplicate.
type handleEntry struct {
	key    HandleKey
	done   chan struct{}
	handle *texture.Handle

	refs atomic.Int64

	mu     sync.Mutex
	dead   bool
	owners []shade.ShaderCodeRef
}

// acquire takes one reference and records the owner. Returns false
// when the entry was already collected; the caller must retry with a
// fresh entry. Owners are kept deduplicated so a shader re-syncing
// every frame holds at most one slot.
func (e *handleEntry) acquire(owner shade.ShaderCodeRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dead {
		return false
	}
	e.refs.Add(1)
	if !owner.Valid() {
		return true
	}
	for _, ref := range e.owners {
		if ref == owner {
			return true
		}
	}
	e.owners = append(e.owners, owner)
	return true
}

func (e *handleEntry) release() {
	for {
		n := e.refs.Load()
		if n <= 0 {
			return
		}
		if e.refs.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// kill marks the entry dead if it holds no references, so a
// concurrent acquire between the refcount check and the table delete
// cannot resurrect it. Must only be called for constructed entries.
func (e *handleEntry) kill() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.refs.Load() > 0 {
		return false
	}
	e.dead = true
	return true
}

func (e *handleEntry) ownerRefs() []shade.ShaderCodeRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]shade.ShaderCodeRef, len(e.owners))
	copy(out, e.owners)
	return out
}

// Registry deduplicates and owns texture resources, resource handles
// and texture handles for one logical device.
type Registry struct {
	provider DeviceHandle
	device   hal.Device // nil when the provider exposes no HAL device

	shaders *shade.ShaderTable

	resources       *table[TextureKey, *texture.Resource]
	resourceHandles *table[TextureKey, *texture.ResourceHandle]
	handles         *table[HandleKey, *handleEntry]
}

// Stats summarizes registry occupancy and lookup traffic.
type Stats struct {
	Resources       int
	ResourceHandles int
	Handles         int
	Hits            uint64
	Misses          uint64
}

// New creates a registry for the given device provider. A nil
// provider, or one that exposes no HAL device, is accepted: objects
// are then created without device state and binding degrades to
// bind-as-null.
func New(provider DeviceHandle) *Registry {
	device, err := HALDevice(provider)
	if err != nil && provider != nil {
		shade.Logger().Warn("registry: no HAL device available, textures will bind as null",
			"err", err)
	}

	return &Registry{
		provider:        provider,
		device:          device,
		shaders:         shade.NewShaderTable(),
		resources:       newTable[TextureKey, *texture.Resource](uint64Hasher[TextureKey]),
		resourceHandles: newTable[TextureKey, *texture.ResourceHandle](uint64Hasher[TextureKey]),
		handles:         newTable[HandleKey, *handleEntry](hashHandleKey),
	}
}

// Shaders returns the shader-code reference table used for the
// non-owning back-references carried by texture handles.
func (r *Registry) Shaders() *shade.ShaderTable { return r.shaders }

// Device returns the HAL device, or nil when none is available.
func (r *Registry) Device() hal.Device { return r.device }

// AllocateTextureHandle returns the shared texture handle for
// (id, t, sampler, bindless), constructing it on first request.
// Concurrent requests for the same key coalesce onto a single
// construction. The owner ref is recorded so the owning shader can
// be asked to re-derive resources when texels are committed later;
// it never extends the shader's lifetime.
//
// The caller must balance the acquisition with Handle.Release.
func (r *Registry) AllocateTextureHandle(
	id texture.ID,
	t texture.Type,
	sampler texture.SamplerParameters,
	memoryRequest uint64,
	bindless bool,
	owner shade.ShaderCodeRef,
) *texture.Handle {
	key := HandleKey{ID: id, Type: t, Sampler: sampler, Bindless: bindless}

	for {
		entry, resident := r.handles.FindOrInsert(key, &handleEntry{
			key:  key,
			done: make(chan struct{}),
		})
		if resident {
			<-entry.done
			if !entry.acquire(owner) {
				// Collected between lookup and acquisition; the dead
				// entry is gone or about to go, insert a fresh one.
				continue
			}
			return entry.handle
		}

		// First requester constructs. Texel data arrives separately via
		// CommitTexture; until then the object carries no device state.
		samplerObj, err := texture.NewSamplerForType(
			r.device, fmt.Sprintf("tex-%d-%s", id, t), t, sampler)
		if err != nil {
			shade.Logger().Warn("registry: sampler creation failed",
				"id", uint64(id), "type", t.String(), "err", err)
		}

		entry.handle = texture.NewHandle(
			emptyObject(t), samplerObj, memoryRequest, entry.release)

		// Acquire before the latch opens so the entry is never both
		// constructed and unreferenced while the constructor still
		// holds it.
		entry.acquire(owner)
		close(entry.done)
		return entry.handle
	}
}

// emptyObject builds a shape-correct object with no device state.
func emptyObject(t texture.Type) texture.Object {
	switch t {
	case texture.TypeUv:
		return texture.NewUvObject(&texture.UvTexture{})
	case texture.TypeField:
		return texture.NewFieldObject(&texture.FieldTexture{})
	case texture.TypePtex:
		return texture.NewPtexObject(&texture.PtexTexture{})
	default:
		return texture.Object{}
	}
}

// CommitTexture installs loaded texel data for every resident handle
// whose key matches id, and asks each registered owning shader to
// re-derive its texture state. Stale owner refs (shader already
// gone) are skipped.
//
// The sampler union is optional: pass a zero Sampler to keep the
// handle's existing sampler state.
func (r *Registry) CommitTexture(id texture.ID, obj texture.Object, sampler texture.Sampler) {
	// A shader may own several entries for one id (sampler variants);
	// it is still notified once per commit.
	seen := make(map[shade.ShaderCodeRef]struct{})
	var owners []shade.ShaderCodeRef

	r.handles.Range(func(key HandleKey, entry *handleEntry) bool {
		if key.ID != id {
			return true
		}
		select {
		case <-entry.done:
		default:
			// Still constructing; the constructor will see the
			// committed data on the next commit pass.
			return true
		}
		entry.handle.SetObject(obj)
		if sampler.Kind() != texture.TypeOther {
			entry.handle.SetSampler(sampler)
		}
		for _, ref := range entry.ownerRefs() {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			owners = append(owners, ref)
		}
		return true
	})

	for _, ref := range owners {
		if code, ok := r.shaders.Lookup(ref); ok {
			code.MarkTexturesStale()
		}
	}
}

// GarbageCollect removes handle entries whose reference count
// dropped to zero and returns how many were removed. Entries are
// marked dead before removal, so an allocation racing the collection
// retries with a fresh entry instead of resurrecting a removed one.
// Resources and resource handles are scene-owned and are not
// collected here.
func (r *Registry) GarbageCollect() int {
	var dead []HandleKey
	r.handles.Range(func(key HandleKey, entry *handleEntry) bool {
		select {
		case <-entry.done:
		default:
			return true
		}
		if entry.kill() {
			dead = append(dead, key)
		}
		return true
	})

	removed := 0
	for _, key := range dead {
		if r.handles.Delete(key) {
			removed++
		}
	}
	return removed
}

// FindTextureResource returns the resident resource for key.
// Absence is not an error; the caller substitutes a fallback.
func (r *Registry) FindTextureResource(key TextureKey) (*texture.Resource, bool) {
	return r.resources.Find(key)
}

// InsertTextureResource registers a loaded resource under key.
// Called by the scene-load side, not by materials.
func (r *Registry) InsertTextureResource(key TextureKey, res *texture.Resource) {
	r.resources.Insert(key, res)
}

// FindTextureResourceHandle returns the resident resource handle for
// key. Absence is not an error.
func (r *Registry) FindTextureResourceHandle(key TextureKey) (*texture.ResourceHandle, bool) {
	return r.resourceHandles.Find(key)
}

// InsertTextureResourceHandle registers a resource handle under key.
func (r *Registry) InsertTextureResourceHandle(key TextureKey, h *texture.ResourceHandle) {
	r.resourceHandles.Insert(key, h)
}

// Stats returns current occupancy and lookup counters.
func (r *Registry) Stats() Stats {
	rh, rm := r.resources.Stats()
	hh, hm := r.resourceHandles.Stats()
	th, tm := r.handles.Stats()
	return Stats{
		Resources:       r.resources.Len(),
		ResourceHandles: r.resourceHandles.Len(),
		Handles:         r.handles.Len(),
		Hits:            rh + hh + th,
		Misses:          rm + hm + tm,
	}
}
