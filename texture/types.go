// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture defines the texture and sampler objects shared
// between materials, the resource registry and the draw-time binder.
//
// A texture object is a tagged union over the supported shapes:
// Uv (2D), Field (3D volumetric) and Ptex (multi-tile adaptive).
// Each shape carries its own statically typed device objects, so the
// binder dispatches with a switch over the shape instead of a
// downcast.
package texture

import "github.com/gogpu/gputypes"

// Type classifies a texture by its shape.
type Type uint8

// Texture shapes.
const (
	// TypeOther is any shape the binding pipeline does not handle.
	TypeOther Type = iota

	// TypeUv is a regular 2D texture sampled with UV coordinates.
	TypeUv

	// TypeField is a 3D volumetric texture sampled in field space.
	TypeField

	// TypePtex is a multi-tile adaptive texture: a 2D array of texels
	// plus a 1D layout table mapping faces to tiles.
	TypePtex
)

// String returns the shape name.
func (t Type) String() string {
	switch t {
	case TypeUv:
		return "uv"
	case TypeField:
		return "field"
	case TypePtex:
		return "ptex"
	default:
		return "other"
	}
}

// ID identifies texture content. Two references with the same ID
// resolve to the same texels regardless of which material asked.
// The zero value means "no texture".
type ID uint64

// InvalidID is the zero value, representing an unresolved texture.
const InvalidID ID = 0

// SamplerParameters describe filtering and wrap state. They are part
// of the registry key: requests differing only in sampler parameters
// receive distinct handles.
type SamplerParameters struct {
	WrapS gputypes.AddressMode
	WrapT gputypes.AddressMode
	WrapR gputypes.AddressMode

	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	MipFilter gputypes.FilterMode
}

// DefaultSamplerParameters returns repeat wrap with linear filtering,
// the usual state for scene textures.
func DefaultSamplerParameters() SamplerParameters {
	return SamplerParameters{
		WrapS:     gputypes.AddressModeRepeat,
		WrapT:     gputypes.AddressModeRepeat,
		WrapR:     gputypes.AddressModeRepeat,
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		MipFilter: gputypes.FilterModeLinear,
	}
}

// FallbackSamplerParameters returns the clamped nearest-neighbor
// state used for 1x1 fallback textures.
func FallbackSamplerParameters() SamplerParameters {
	return SamplerParameters{
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
		WrapR:     gputypes.AddressModeClampToEdge,
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
		MipFilter: gputypes.FilterModeNearest,
	}
}
