// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
)

// UvTexture is the device state of a 2D texture.
type UvTexture struct {
	// Texture is the device object. Nil when the device is absent or
	// the asset has not been committed; the binder binds null then.
	Texture hal.Texture

	Format types.TextureFormat
	Width  uint32
	Height uint32

	// Texels holds CPU-side pixel data for textures created by this
	// subsystem itself (fallbacks). Asset-loaded textures leave it nil.
	Texels []byte
}

// FieldTexture is the device state of a 3D volumetric texture.
type FieldTexture struct {
	Texture hal.Texture

	Format types.TextureFormat
	Width  uint32
	Height uint32
	Depth  uint32

	// SamplingTransform maps world space into the texture's unit
	// cube. It is written into shader buffers for every field
	// texture, bindless or not.
	SamplingTransform f64.Mat4
}

// PtexTexture is the device state of a multi-tile adaptive texture:
// a 2D array holding the tile texels and a buffer-backed layout
// table mapping faces to tiles.
type PtexTexture struct {
	// Texels is a 2D-array texture of tiles.
	Texels hal.Texture

	// Layout is the per-face tile layout table.
	Layout hal.Buffer

	Format    types.TextureFormat
	TileCount uint32
}

// Object is a texture of exactly one shape. The zero value has
// TypeOther and no device state.
type Object struct {
	kind  Type
	uv    *UvTexture
	field *FieldTexture
	ptex  *PtexTexture
}

// NewUvObject wraps a 2D texture.
func NewUvObject(t *UvTexture) Object {
	return Object{kind: TypeUv, uv: t}
}

// NewFieldObject wraps a 3D volumetric texture.
func NewFieldObject(t *FieldTexture) Object {
	return Object{kind: TypeField, field: t}
}

// NewPtexObject wraps a multi-tile adaptive texture.
func NewPtexObject(t *PtexTexture) Object {
	return Object{kind: TypePtex, ptex: t}
}

// Kind returns the texture shape.
func (o Object) Kind() Type { return o.kind }

// Uv returns the 2D texture state, or nil if the object is not Uv.
func (o Object) Uv() *UvTexture { return o.uv }

// Field returns the 3D texture state, or nil if the object is not Field.
func (o Object) Field() *FieldTexture { return o.field }

// Ptex returns the tiled texture state, or nil if the object is not Ptex.
func (o Object) Ptex() *PtexTexture { return o.ptex }

// Valid reports whether the object carries state for its shape.
func (o Object) Valid() bool {
	switch o.kind {
	case TypeUv:
		return o.uv != nil
	case TypeField:
		return o.field != nil
	case TypePtex:
		return o.ptex != nil
	default:
		return false
	}
}
