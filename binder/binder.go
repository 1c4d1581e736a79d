// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package binder generates shader buffer layouts for resolved
// textures and binds them to shader inputs at draw time.
//
// Two binding models are supported. With bindless textures, each
// texture is referenced by a 64-bit handle written into the shader's
// parameter buffer and draw-time bind/unbind is a no-op. Without, a
// resource binder assigns each declared shader name a device texture
// unit, and textures are bound per draw call to their units.
//
// Dispatch is by declared texture shape: Uv binds a 2D texture,
// Field a 3D texture, Ptex a 2D-array of tiles plus a texel layout
// buffer on a second unit.
package binder

import (
	"github.com/gogpu/shade"
	"github.com/gogpu/shade/texture"
	"github.com/gogpu/wgpu/hal"
)

// UsesBindlessTextures reports whether textures travel as bindless
// handles. The capability is registered on the process once the
// device context exists; it is re-read per operation, never cached
// here.
func UsesBindlessTextures() bool {
	return shade.BindlessTexturesEnabled()
}

// ResourceBinder resolves a declared shader input name to its device
// texture unit. Implemented by the draw pipeline's binding tables.
type ResourceBinder interface {
	// Binding returns the texture unit for name. ok is false when
	// the shader declares no such input.
	Binding(name string) (unit int, ok bool)
}

// UnitDevice is the device surface the binder drives in the
// unit-indexed model. Implementations bind a nil object as null.
// All methods must be called from the thread owning the device
// context.
type UnitDevice interface {
	BindTexture2D(unit int, tex hal.Texture)
	BindTexture3D(unit int, tex hal.Texture)
	BindTexture2DArray(unit int, tex hal.Texture)
	BindTexelBuffer(unit int, buf hal.Buffer)
	BindSampler(unit int, sampler hal.Sampler)
}

// GetBufferSpecs appends the buffer layout entries contributed by
// each texture. Pure layout; device state is never touched.
//
// Per shape: Uv contributes its handle entry (bindless only); Field
// contributes a <name>SamplingTransform mat4 entry always, plus the
// handle entry when bindless; Ptex contributes the handle entry and
// a <name>_layout handle entry (bindless only).
func GetBufferSpecs(textures []texture.NamedHandle, specs *[]BufferSpec) {
	bindless := UsesBindlessTextures()

	for _, tex := range textures {
		switch tex.Type {
		case texture.TypeUv:
			if bindless {
				*specs = append(*specs, BufferSpec{
					Name: tex.Name,
					Type: bindlessHandleTupleType,
				})
			}
		case texture.TypeField:
			if bindless {
				*specs = append(*specs, BufferSpec{
					Name: tex.Name,
					Type: bindlessHandleTupleType,
				})
			}
			*specs = append(*specs, BufferSpec{
				Name: tex.Name + "SamplingTransform",
				Type: TupleType{Type: ValueTypeDoubleMat4, Count: 1},
			})
		case texture.TypePtex:
			if bindless {
				*specs = append(*specs, BufferSpec{
					Name: tex.Name,
					Type: bindlessHandleTupleType,
				})
				*specs = append(*specs, BufferSpec{
					Name: tex.Name + "_layout",
					Type: bindlessHandleTupleType,
				})
			}
		default:
			shade.CodingError("unsupported texture type",
				"name", tex.Name, "type", tex.Type.String())
		}
	}
}

// ComputeBufferSources appends the buffer sources for each texture.
// Field textures always contribute their sampling transform; handle
// sources are contributed only in bindless mode.
func ComputeBufferSources(textures []texture.NamedHandle, sources *[]BufferSource) {
	bindless := UsesBindlessTextures()

	for _, tex := range textures {
		switch tex.Type {
		case texture.TypeUv:
			if !bindless {
				continue
			}
			sampler := tex.Handle.Sampler().Uv()
			if sampler == nil {
				shade.CodingError("bad uv sampler object", "name", tex.Name)
				continue
			}
			*sources = append(*sources,
				NewBindlessHandleSource(tex.Name, sampler.BindlessHandle))

		case texture.TypeField:
			obj := tex.Handle.Object().Field()
			if obj == nil {
				shade.CodingError("bad field texture object", "name", tex.Name)
				continue
			}
			*sources = append(*sources,
				NewMat4Source(tex.Name+"SamplingTransform", obj.SamplingTransform))

			if !bindless {
				continue
			}
			sampler := tex.Handle.Sampler().Field()
			if sampler == nil {
				shade.CodingError("bad field sampler object", "name", tex.Name)
				continue
			}
			*sources = append(*sources,
				NewBindlessHandleSource(tex.Name, sampler.BindlessHandle))

		case texture.TypePtex:
			if !bindless {
				continue
			}
			sampler := tex.Handle.Sampler().Ptex()
			if sampler == nil {
				shade.CodingError("bad ptex sampler object", "name", tex.Name)
				continue
			}
			*sources = append(*sources,
				NewBindlessHandleSource(tex.Name, sampler.TexelsBindlessHandle),
				NewBindlessHandleSource(tex.Name+"_layout", sampler.LayoutBindlessHandle))

		default:
			shade.CodingError("unsupported texture type",
				"name", tex.Name, "type", tex.Type.String())
		}
	}
}

// BindResources binds each texture to its shader input. A no-op in
// bindless mode: textures are referenced by value there and nothing
// occupies a unit.
func BindResources(dev UnitDevice, rb ResourceBinder, textures []texture.NamedHandle) {
	if UsesBindlessTextures() {
		return
	}
	dispatchBind(dev, rb, textures, true)
}

// UnbindResources restores the units used by each texture to null.
// A no-op in bindless mode.
func UnbindResources(dev UnitDevice, rb ResourceBinder, textures []texture.NamedHandle) {
	if UsesBindlessTextures() {
		return
	}
	dispatchBind(dev, rb, textures, false)
}

func dispatchBind(dev UnitDevice, rb ResourceBinder, textures []texture.NamedHandle, bind bool) {
	for _, tex := range textures {
		switch tex.Type {
		case texture.TypeUv:
			bindUv(dev, rb, tex, bind)
		case texture.TypeField:
			bindField(dev, rb, tex, bind)
		case texture.TypePtex:
			bindPtex(dev, rb, tex, bind)
		default:
			shade.CodingError("unsupported texture type",
				"name", tex.Name, "type", tex.Type.String())
		}
	}
}

func bindUv(dev UnitDevice, rb ResourceBinder, tex texture.NamedHandle, bind bool) {
	unit, ok := rb.Binding(tex.Name)
	if !ok {
		shade.CodingError("no binding for texture", "name", tex.Name)
		return
	}

	// A mismatched or missing device object binds as null.
	var devTex hal.Texture
	var devSampler hal.Sampler
	if bind {
		if obj := tex.Handle.Object().Uv(); obj != nil {
			devTex = obj.Texture
		}
		if s := tex.Handle.Sampler().Uv(); s != nil {
			devSampler = s.Sampler
		}
	}
	dev.BindTexture2D(unit, devTex)
	dev.BindSampler(unit, devSampler)
}

func bindField(dev UnitDevice, rb ResourceBinder, tex texture.NamedHandle, bind bool) {
	unit, ok := rb.Binding(tex.Name)
	if !ok {
		shade.CodingError("no binding for texture", "name", tex.Name)
		return
	}

	var devTex hal.Texture
	var devSampler hal.Sampler
	if bind {
		if obj := tex.Handle.Object().Field(); obj != nil {
			devTex = obj.Texture
		}
		if s := tex.Handle.Sampler().Field(); s != nil {
			devSampler = s.Sampler
		}
	}
	dev.BindTexture3D(unit, devTex)
	dev.BindSampler(unit, devSampler)
}

func bindPtex(dev UnitDevice, rb ResourceBinder, tex texture.NamedHandle, bind bool) {
	texelUnit, ok := rb.Binding(tex.Name)
	if !ok {
		shade.CodingError("no binding for texture", "name", tex.Name)
		return
	}
	layoutUnit, ok := rb.Binding(tex.Name + "_layout")
	if !ok {
		shade.CodingError("no binding for texture layout", "name", tex.Name)
		return
	}

	var texels hal.Texture
	var layout hal.Buffer
	if bind {
		if obj := tex.Handle.Object().Ptex(); obj != nil {
			texels = obj.Texels
			layout = obj.Layout
		}
	}
	dev.BindTexture2DArray(texelUnit, texels)
	dev.BindTexelBuffer(layoutUnit, layout)
}
