// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "sync/atomic"

// Resource is a loaded texture on the legacy per-parameter
// resolution path: texture object plus sampler state under a single
// content identity. Resources live in the registry and are shared by
// every material whose parameters resolve to the same content.
type Resource struct {
	id      ID
	object  Object
	sampler Sampler
	params  SamplerParameters
}

// NewResource builds a resource for the given content identity.
func NewResource(id ID, object Object, sampler Sampler, params SamplerParameters) *Resource {
	return &Resource{id: id, object: object, sampler: sampler, params: params}
}

// ID returns the content identity.
func (r *Resource) ID() ID { return r.id }

// Object returns the texture object.
func (r *Resource) Object() Object { return r.object }

// Sampler returns the sampler object.
func (r *Resource) Sampler() Sampler { return r.sampler }

// SamplerParameters returns the filtering and wrap state the
// resource was created with.
func (r *Resource) SamplerParameters() SamplerParameters { return r.params }

// Type returns the resource's texture shape.
func (r *Resource) Type() Type {
	if r == nil {
		return TypeOther
	}
	return r.object.Kind()
}

// ResourceHandle is a level of indirection between a material
// parameter and a Resource. The registry keeps one handle per
// (scope, connection path) so that swapping the resource underneath
// (asset reload, late load) reaches every referencing material
// without re-resolving parameters.
//
// Materials resolving the same connection may sync concurrently, so
// the resource pointer is swapped atomically.
type ResourceHandle struct {
	resource atomic.Pointer[Resource]
}

// NewResourceHandle wraps a resource, which may be nil for a handle
// whose resource has not resolved yet.
func NewResourceHandle(r *Resource) *ResourceHandle {
	h := &ResourceHandle{}
	h.resource.Store(r)
	return h
}

// Resource returns the current resource, or nil.
func (h *ResourceHandle) Resource() *Resource {
	if h == nil {
		return nil
	}
	return h.resource.Load()
}

// SetResource swaps the resource the handle points at.
func (h *ResourceHandle) SetResource(r *Resource) {
	h.resource.Store(r)
}

// Valid reports whether the handle currently points at a resource.
func (h *ResourceHandle) Valid() bool {
	return h != nil && h.resource.Load() != nil
}
