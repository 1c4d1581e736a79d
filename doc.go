// Package shade synchronizes scene-graph material descriptions with
// GPU shader and texture state.
//
// # Overview
//
// shade is the material subsystem of a GoGPU-based scene renderer. It
// takes a processed material network (shader source, parameters and
// texture references), resolves every texture reference to a shared
// GPU resource, and keeps the resulting surface-shader state in sync
// with scene edits using a dirty-bit protocol. At draw time it binds
// the resolved textures to shader inputs, either as bindless handles
// or through unit-indexed samplers.
//
// # Packages
//
// The library is organized into:
//   - shade (root): logging, dirty bits, process-wide settings and
//     the non-owning shader-code reference table
//   - material: the per-material sync engine and surface shader state
//   - texture: texture/sampler objects, handles and fallback textures
//   - registry: deduplicating, concurrency-safe resource registry
//   - binder: buffer-spec generation and draw-time bind/unbind
//
// # Quick Start
//
//	reg := registry.New(deviceProvider)
//	mat := material.New("/materials/preview", processor)
//
//	bits := shade.AllDirty
//	mat.Sync(sceneDelegate, &bits)
//
//	// At draw time:
//	binder.BindResources(dev, resourceBinder, shader.NamedTextureHandles())
//
// # Concurrency
//
// Sync may be invoked concurrently for distinct materials belonging
// to the same frame; the registry coalesces concurrent allocations of
// the same resource key so at most one construction is in flight per
// key. Bind/unbind must run on the thread owning the device context.
package shade

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
