package material

import (
	"github.com/gogpu/shade/binder"
	"github.com/gogpu/shade/texture"
	"golang.org/x/image/math/f64"
)

// ParamKind selects which role a shading-network input plays.
// Exactly one kind is active per parameter.
type ParamKind uint8

// Parameter kinds.
const (
	// KindFallback is a constant input filled from the fallback value.
	KindFallback ParamKind = iota

	// KindPrimvarRedirect forwards a per-primitive attribute; the
	// fallback value is used when the primitive lacks the attribute.
	KindPrimvarRedirect

	// KindTexture samples a texture resolved from the connection
	// path, falling back to the literal value when unresolvable.
	KindTexture
)

// Param is one shading-network input as produced by the network
// processor.
type Param struct {
	Kind ParamKind
	Name string

	// Fallback is the literal value used when the input is a
	// constant, the primvar is missing, or the texture cannot be
	// resolved.
	Fallback f64.Vec4

	// TextureType, Connection, Sampler and MemoryRequest apply to
	// KindTexture only.
	TextureType   texture.Type
	Connection    string
	Sampler       texture.SamplerParameters
	MemoryRequest uint64

	// Primvar is the redirected attribute name for
	// KindPrimvarRedirect.
	Primvar string
}

// IsFallback reports whether the parameter is a constant input.
func (p Param) IsFallback() bool { return p.Kind == KindFallback }

// IsPrimvarRedirect reports whether the parameter forwards a primvar.
func (p Param) IsPrimvarRedirect() bool { return p.Kind == KindPrimvarRedirect }

// IsTexture reports whether the parameter samples a texture.
func (p Param) IsTexture() bool { return p.Kind == KindTexture }

// fallbackSpecAndSource builds the constant buffer entry carrying a
// parameter's fallback value.
func fallbackSpecAndSource(p Param) (binder.BufferSpec, binder.BufferSource) {
	src := binder.NewVec4Source(p.Name, p.Fallback)
	return binder.BufferSpec{Name: p.Name, Type: src.TupleType()}, src
}
