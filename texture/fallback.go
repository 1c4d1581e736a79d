// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	types "github.com/gogpu/gputypes"
	"golang.org/x/image/math/f64"
)

// NewFallbackUv builds a 1x1 2D resource holding the literal
// fallback value of an unresolved texture parameter. The value is
// clamped to [0,1] and encoded as RGBA8. Fallback resources are
// owned exclusively by the material that created them and are never
// registered in the shared registry.
//
// Only the Uv shape has a fallback path; other shapes resolve to an
// empty handle instead.
func NewFallbackUv(value f64.Vec4) *Resource {
	obj := NewUvObject(&UvTexture{
		Format: types.TextureFormatRGBA8Unorm,
		Width:  1,
		Height: 1,
		Texels: encodeRGBA8(value),
	})
	return NewResource(
		InvalidID,
		obj,
		NewUvSampler(&UvSampler{}),
		FallbackSamplerParameters(),
	)
}

// encodeRGBA8 packs a unit-range color into one RGBA8 texel.
func encodeRGBA8(value f64.Vec4) []byte {
	texel := make([]byte, 4)
	for i, c := range value {
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		texel[i] = byte(c*255 + 0.5)
	}
	return texel
}
