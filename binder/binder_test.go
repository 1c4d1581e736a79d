// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binder

import (
	"testing"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/texture"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f64"
)

func setBindless(t *testing.T, on bool) {
	t.Helper()
	orig := shade.BindlessTexturesEnabled()
	t.Cleanup(func() { shade.SetBindlessTexturesEnabled(orig) })
	shade.SetBindlessTexturesEnabled(on)
}

func uvHandle(handle uint64) *texture.Handle {
	return texture.NewHandle(
		texture.NewUvObject(&texture.UvTexture{}),
		texture.NewUvSampler(&texture.UvSampler{BindlessHandle: handle}),
		0, nil)
}

func fieldHandle(handle uint64, transform f64.Mat4) *texture.Handle {
	return texture.NewHandle(
		texture.NewFieldObject(&texture.FieldTexture{SamplingTransform: transform}),
		texture.NewFieldSampler(&texture.FieldSampler{BindlessHandle: handle}),
		0, nil)
}

func ptexHandle(texels, layout uint64) *texture.Handle {
	return texture.NewHandle(
		texture.NewPtexObject(&texture.PtexTexture{}),
		texture.NewPtexSampler(&texture.PtexSampler{
			TexelsBindlessHandle: texels,
			LayoutBindlessHandle: layout,
		}),
		0, nil)
}

func TestGetBufferSpecsUv(t *testing.T) {
	tex := []texture.NamedHandle{{Name: "diffuse", Type: texture.TypeUv, Handle: uvHandle(1)}}

	setBindless(t, false)
	var specs []BufferSpec
	GetBufferSpecs(tex, &specs)
	if len(specs) != 0 {
		t.Errorf("uv without bindless contributes %d specs, want 0", len(specs))
	}

	setBindless(t, true)
	specs = nil
	GetBufferSpecs(tex, &specs)
	if len(specs) != 1 {
		t.Fatalf("uv with bindless contributes %d specs, want 1", len(specs))
	}
	if specs[0].Name != "diffuse" || specs[0].Type != bindlessHandleTupleType {
		t.Errorf("unexpected uv spec %+v", specs[0])
	}
}

func TestGetBufferSpecsField(t *testing.T) {
	tex := []texture.NamedHandle{{Name: "density", Type: texture.TypeField, Handle: fieldHandle(1, f64.Mat4{})}}

	setBindless(t, false)
	var specs []BufferSpec
	GetBufferSpecs(tex, &specs)
	if len(specs) != 1 {
		t.Fatalf("field without bindless contributes %d specs, want 1", len(specs))
	}
	if specs[0].Name != "densitySamplingTransform" ||
		specs[0].Type.Type != ValueTypeDoubleMat4 {
		t.Errorf("unexpected field spec %+v", specs[0])
	}

	setBindless(t, true)
	specs = nil
	GetBufferSpecs(tex, &specs)
	if len(specs) != 2 {
		t.Fatalf("field with bindless contributes %d specs, want 2", len(specs))
	}
	if specs[0].Name != "density" || specs[0].Type != bindlessHandleTupleType {
		t.Errorf("unexpected field handle spec %+v", specs[0])
	}
}

func TestGetBufferSpecsPtex(t *testing.T) {
	tex := []texture.NamedHandle{{Name: "ptx", Type: texture.TypePtex, Handle: ptexHandle(1, 2)}}

	setBindless(t, false)
	var specs []BufferSpec
	GetBufferSpecs(tex, &specs)
	if len(specs) != 0 {
		t.Errorf("ptex without bindless contributes %d specs, want 0", len(specs))
	}

	setBindless(t, true)
	specs = nil
	GetBufferSpecs(tex, &specs)
	if len(specs) != 2 {
		t.Fatalf("ptex with bindless contributes %d specs, want 2", len(specs))
	}
	if specs[0].Name != "ptx" || specs[1].Name != "ptx_layout" {
		t.Errorf("unexpected ptex spec names %q, %q", specs[0].Name, specs[1].Name)
	}
	for _, s := range specs {
		if s.Type != bindlessHandleTupleType {
			t.Errorf("ptex spec %q type = %+v, want uvec2 handle", s.Name, s.Type)
		}
	}
}

func TestComputeBufferSourcesField(t *testing.T) {
	var transform f64.Mat4
	for i := range transform {
		transform[i] = float64(i)
	}
	tex := []texture.NamedHandle{{Name: "density", Type: texture.TypeField, Handle: fieldHandle(7, transform)}}

	setBindless(t, false)
	var sources []BufferSource
	ComputeBufferSources(tex, &sources)
	if len(sources) != 1 {
		t.Fatalf("field without bindless contributes %d sources, want 1", len(sources))
	}
	if sources[0].Name() != "densitySamplingTransform" {
		t.Errorf("source name = %q", sources[0].Name())
	}
	if got := len(sources[0].Bytes()); got != 128 {
		t.Errorf("mat4 payload is %d bytes, want 128", got)
	}

	setBindless(t, true)
	sources = nil
	ComputeBufferSources(tex, &sources)
	if len(sources) != 2 {
		t.Fatalf("field with bindless contributes %d sources, want 2", len(sources))
	}
}

func TestComputeBufferSourcesPtex(t *testing.T) {
	setBindless(t, true)

	tex := []texture.NamedHandle{{Name: "ptx", Type: texture.TypePtex, Handle: ptexHandle(3, 4)}}
	var sources []BufferSource
	ComputeBufferSources(tex, &sources)
	if len(sources) != 2 {
		t.Fatalf("ptex contributes %d sources, want 2", len(sources))
	}
	if sources[0].Name() != "ptx" || sources[1].Name() != "ptx_layout" {
		t.Errorf("unexpected source names %q, %q", sources[0].Name(), sources[1].Name())
	}
}

type bindOp struct {
	kind string
	unit int
	null bool
}

type recordingDevice struct {
	ops []bindOp
}

func (d *recordingDevice) BindTexture2D(unit int, tex hal.Texture) {
	d.ops = append(d.ops, bindOp{"tex2d", unit, tex == nil})
}

func (d *recordingDevice) BindTexture3D(unit int, tex hal.Texture) {
	d.ops = append(d.ops, bindOp{"tex3d", unit, tex == nil})
}

func (d *recordingDevice) BindTexture2DArray(unit int, tex hal.Texture) {
	d.ops = append(d.ops, bindOp{"tex2darray", unit, tex == nil})
}

func (d *recordingDevice) BindTexelBuffer(unit int, buf hal.Buffer) {
	d.ops = append(d.ops, bindOp{"texelbuf", unit, buf == nil})
}

func (d *recordingDevice) BindSampler(unit int, sampler hal.Sampler) {
	d.ops = append(d.ops, bindOp{"sampler", unit, sampler == nil})
}

type mapBinder map[string]int

func (m mapBinder) Binding(name string) (int, bool) {
	unit, ok := m[name]
	return unit, ok
}

func TestBindResourcesDispatch(t *testing.T) {
	setBindless(t, false)

	dev := &recordingDevice{}
	rb := mapBinder{"diffuse": 0, "density": 1, "ptx": 2, "ptx_layout": 3}
	tex := []texture.NamedHandle{
		{Name: "diffuse", Type: texture.TypeUv, Handle: uvHandle(0)},
		{Name: "density", Type: texture.TypeField, Handle: fieldHandle(0, f64.Mat4{})},
		{Name: "ptx", Type: texture.TypePtex, Handle: ptexHandle(0, 0)},
	}

	BindResources(dev, rb, tex)

	want := []bindOp{
		{"tex2d", 0, true},
		{"sampler", 0, true},
		{"tex3d", 1, true},
		{"sampler", 1, true},
		{"tex2darray", 2, true},
		{"texelbuf", 3, true},
	}
	if len(dev.ops) != len(want) {
		t.Fatalf("recorded %d bind ops, want %d: %+v", len(dev.ops), len(want), dev.ops)
	}
	for i, op := range dev.ops {
		if op != want[i] {
			t.Errorf("op %d = %+v, want %+v", i, op, want[i])
		}
	}
}

func TestUnbindResourcesPassesNull(t *testing.T) {
	setBindless(t, false)

	dev := &recordingDevice{}
	rb := mapBinder{"diffuse": 5}
	tex := []texture.NamedHandle{
		{Name: "diffuse", Type: texture.TypeUv, Handle: uvHandle(0)},
	}

	UnbindResources(dev, rb, tex)

	if len(dev.ops) != 2 {
		t.Fatalf("recorded %d unbind ops, want 2", len(dev.ops))
	}
	for _, op := range dev.ops {
		if !op.null {
			t.Errorf("unbind op %+v must pass a null object", op)
		}
		if op.unit != 5 {
			t.Errorf("unbind op targeted unit %d, want 5", op.unit)
		}
	}
}

func TestBindResourcesNoOpWhenBindless(t *testing.T) {
	setBindless(t, true)

	dev := &recordingDevice{}
	rb := mapBinder{"diffuse": 0}
	tex := []texture.NamedHandle{
		{Name: "diffuse", Type: texture.TypeUv, Handle: uvHandle(1)},
	}

	BindResources(dev, rb, tex)
	UnbindResources(dev, rb, tex)
	if len(dev.ops) != 0 {
		t.Errorf("bindless bind/unbind recorded %d ops, want 0", len(dev.ops))
	}
}

func TestBindSkipsUndeclaredInput(t *testing.T) {
	setBindless(t, false)

	dev := &recordingDevice{}
	rb := mapBinder{}
	tex := []texture.NamedHandle{
		{Name: "diffuse", Type: texture.TypeUv, Handle: uvHandle(0)},
	}

	BindResources(dev, rb, tex)
	if len(dev.ops) != 0 {
		t.Errorf("undeclared input recorded %d ops, want 0", len(dev.ops))
	}
}
