package material

import (
	"sync/atomic"

	"github.com/gogpu/shade/binder"
	"github.com/gogpu/shade/texture"
)

// Shader stages addressable through SurfaceShader.Source.
const (
	StageFragment = "fragment"
	StageGeometry = "geometry"
)

// ShaderTextureDescriptor is one texture binding on the legacy
// per-parameter path: shader input name, shape, and the resource
// handle resolved for it.
type ShaderTextureDescriptor struct {
	Name   string
	Type   texture.Type
	Handle *texture.ResourceHandle
}

// SurfaceShader is the shader state a material keeps in sync:
// source strings, material tag, parameters, buffer layout and the
// resolved textures. It is written only by Material.Sync and read by
// the draw-batching system.
type SurfaceShader struct {
	fragmentSource string
	geometrySource string
	materialTag    string

	params             []Param
	specs              []binder.BufferSpec
	sources            []binder.BufferSource
	textureDescriptors []ShaderTextureDescriptor
	namedHandles       []texture.NamedHandle

	primvarFiltering bool

	// texturesStale is set from the registry's commit path, which
	// may run on a different thread than sync.
	texturesStale atomic.Bool
}

// NewSurfaceShader creates an empty surface shader.
func NewSurfaceShader() *SurfaceShader {
	return &SurfaceShader{materialTag: TagDefault}
}

// SetFragmentSource stores the fragment stage source.
func (s *SurfaceShader) SetFragmentSource(src string) { s.fragmentSource = src }

// SetGeometrySource stores the geometry stage source.
func (s *SurfaceShader) SetGeometrySource(src string) { s.geometrySource = src }

// Source returns the stored source for a stage, or "".
func (s *SurfaceShader) Source(stage string) string {
	switch stage {
	case StageFragment:
		return s.fragmentSource
	case StageGeometry:
		return s.geometrySource
	default:
		return ""
	}
}

// SetMaterialTag stores the batch-grouping tag.
func (s *SurfaceShader) SetMaterialTag(tag string) { s.materialTag = tag }

// MaterialTag returns the batch-grouping tag.
func (s *SurfaceShader) MaterialTag() string { return s.materialTag }

// SetParams stores the ordered parameter list.
func (s *SurfaceShader) SetParams(params []Param) { s.params = params }

// Params returns the ordered parameter list.
func (s *SurfaceShader) Params() []Param { return s.params }

// SetEnabledPrimvarFiltering toggles filtering of primvars down to
// the ones the parameter list references.
func (s *SurfaceShader) SetEnabledPrimvarFiltering(v bool) { s.primvarFiltering = v }

// PrimvarFilteringEnabled reports whether primvar filtering is on.
func (s *SurfaceShader) PrimvarFilteringEnabled() bool { return s.primvarFiltering }

// SetTextureDescriptors stores the legacy-path texture bindings.
func (s *SurfaceShader) SetTextureDescriptors(descs []ShaderTextureDescriptor) {
	s.textureDescriptors = descs
}

// TextureDescriptors returns the legacy-path texture bindings.
func (s *SurfaceShader) TextureDescriptors() []ShaderTextureDescriptor {
	return s.textureDescriptors
}

// SetNamedTextureHandles stores the scene-texture-path handles,
// returning the previous set's registry references.
func (s *SurfaceShader) SetNamedTextureHandles(handles []texture.NamedHandle) {
	for _, h := range s.namedHandles {
		if h.Handle != nil {
			h.Handle.Release()
		}
	}
	s.namedHandles = handles
}

// NamedTextureHandles returns the scene-texture-path handles.
func (s *SurfaceShader) NamedTextureHandles() []texture.NamedHandle {
	return s.namedHandles
}

// SetBufferSources stores the merged buffer layout and values for
// the draw pipeline to commit.
func (s *SurfaceShader) SetBufferSources(specs []binder.BufferSpec, sources []binder.BufferSource) {
	s.specs = specs
	s.sources = sources
}

// BufferSpecs returns the buffer layout.
func (s *SurfaceShader) BufferSpecs() []binder.BufferSpec { return s.specs }

// BufferSources returns the buffer values.
func (s *SurfaceShader) BufferSources() []binder.BufferSource { return s.sources }

// MarkTexturesStale records that a texture handle changed underneath
// the shader and derived resources must be recomputed. Safe to call
// from the texture commit thread.
func (s *SurfaceShader) MarkTexturesStale() { s.texturesStale.Store(true) }

// TexturesStale reports and clears the stale flag.
func (s *SurfaceShader) TexturesStale() bool { return s.texturesStale.Load() }

// ClearTexturesStale resets the stale flag after re-derivation.
func (s *SurfaceShader) ClearTexturesStale() { s.texturesStale.Store(false) }

// Reload drops derived state so the next sync rebuilds it from
// sources.
func (s *SurfaceShader) Reload() {
	s.texturesStale.Store(true)
}
