// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// UvSampler is the sampler state for a 2D texture.
type UvSampler struct {
	Sampler hal.Sampler

	// BindlessHandle is the combined texture+sampler handle written
	// into shader buffers when bindless textures are enabled. Zero
	// when bindless mode is off or the texture is not resident.
	BindlessHandle uint64
}

// FieldSampler is the sampler state for a 3D volumetric texture.
type FieldSampler struct {
	Sampler hal.Sampler

	BindlessHandle uint64
}

// PtexSampler is the sampler state for a multi-tile adaptive
// texture. Ptex sampling is point sampling over explicit tiles, so
// there is no filtering sampler object; bindless mode instead needs
// one handle for the texel array and one for the layout table.
type PtexSampler struct {
	TexelsBindlessHandle uint64
	LayoutBindlessHandle uint64
}

// Sampler pairs a texture shape with its typed sampler state. Like
// Object it is a tagged union selected by Kind.
type Sampler struct {
	kind  Type
	uv    *UvSampler
	field *FieldSampler
	ptex  *PtexSampler
}

// NewUvSampler wraps 2D sampler state.
func NewUvSampler(s *UvSampler) Sampler { return Sampler{kind: TypeUv, uv: s} }

// NewFieldSampler wraps 3D sampler state.
func NewFieldSampler(s *FieldSampler) Sampler { return Sampler{kind: TypeField, field: s} }

// NewPtexSampler wraps tiled sampler state.
func NewPtexSampler(s *PtexSampler) Sampler { return Sampler{kind: TypePtex, ptex: s} }

// Kind returns the sampler's texture shape.
func (s Sampler) Kind() Type { return s.kind }

// Uv returns the 2D sampler state, or nil if the sampler is not Uv.
func (s Sampler) Uv() *UvSampler { return s.uv }

// Field returns the 3D sampler state, or nil if the sampler is not Field.
func (s Sampler) Field() *FieldSampler { return s.field }

// Ptex returns the tiled sampler state, or nil if the sampler is not Ptex.
func (s Sampler) Ptex() *PtexSampler { return s.ptex }

// CreateDeviceSampler realizes params as a device sampler object.
// A nil device yields a nil sampler, which downstream binding treats
// as bind-as-null rather than an error.
func CreateDeviceSampler(device hal.Device, label string, params SamplerParameters) (hal.Sampler, error) {
	if device == nil {
		return nil, nil
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: params.WrapS,
		AddressModeV: params.WrapT,
		AddressModeW: params.WrapR,
		MagFilter:    params.MagFilter,
		MinFilter:    params.MinFilter,
		MipmapFilter: params.MipFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler %q: %w", label, err)
	}
	return sampler, nil
}

// NewSamplerForType creates the sampler union matching a texture
// shape, realizing device state when a device is available. Shapes
// the binding pipeline does not handle yield a zero Sampler.
func NewSamplerForType(device hal.Device, label string, t Type, params SamplerParameters) (Sampler, error) {
	switch t {
	case TypeUv:
		s, err := CreateDeviceSampler(device, label, params)
		if err != nil {
			return Sampler{}, err
		}
		return NewUvSampler(&UvSampler{Sampler: s}), nil
	case TypeField:
		s, err := CreateDeviceSampler(device, label, params)
		if err != nil {
			return Sampler{}, err
		}
		return NewFieldSampler(&FieldSampler{Sampler: s}), nil
	case TypePtex:
		return NewPtexSampler(&PtexSampler{}), nil
	default:
		return Sampler{}, nil
	}
}
