// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binder

import (
	"encoding/binary"
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestValueTypeSize(t *testing.T) {
	cases := map[ValueType]int{
		ValueTypeUint32Vec2: 8,
		ValueTypeDoubleVec4: 32,
		ValueTypeDoubleMat4: 128,
		ValueType(0):        0,
	}
	for vt, want := range cases {
		if got := vt.Size(); got != want {
			t.Errorf("ValueType(%d).Size() = %d, want %d", vt, got, want)
		}
	}
}

func TestBindlessHandleSourceBytes(t *testing.T) {
	src := NewBindlessHandleSource("diffuse", 0x1122334455667788)

	if src.Name() != "diffuse" {
		t.Errorf("name = %q", src.Name())
	}
	if src.TupleType() != bindlessHandleTupleType {
		t.Errorf("tuple type = %+v", src.TupleType())
	}

	b := src.Bytes()
	if len(b) != 8 {
		t.Fatalf("payload is %d bytes, want 8", len(b))
	}
	if got := binary.LittleEndian.Uint64(b); got != 0x1122334455667788 {
		t.Errorf("payload = %#x", got)
	}
}

func TestBindlessHandleSourceZeroStillUsable(t *testing.T) {
	// A zero handle is a coding error but the source is still produced
	// so buffer layout and source lists stay aligned.
	src := NewBindlessHandleSource("diffuse", 0)
	if src == nil {
		t.Fatal("zero handle must still yield a source")
	}
	if got := binary.LittleEndian.Uint64(src.Bytes()); got != 0 {
		t.Errorf("payload = %#x, want 0", got)
	}
}

func TestVec4SourceBytes(t *testing.T) {
	src := NewVec4Source("color", f64.Vec4{0.5, 1.0, -2.0, 4.0})

	b := src.Bytes()
	if len(b) != 32 {
		t.Fatalf("payload is %d bytes, want 32", len(b))
	}
	want := [4]float64{0.5, 1.0, -2.0, 4.0}
	for i, w := range want {
		got := math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		if got != w {
			t.Errorf("component %d = %v, want %v", i, got, w)
		}
	}
}

func TestMat4SourceBytes(t *testing.T) {
	var m f64.Mat4
	for i := range m {
		m[i] = float64(i) * 0.25
	}
	src := NewMat4Source("transform", m)

	if src.TupleType().Type != ValueTypeDoubleMat4 {
		t.Errorf("tuple type = %+v", src.TupleType())
	}
	b := src.Bytes()
	if len(b) != 128 {
		t.Fatalf("payload is %d bytes, want 128", len(b))
	}
	for i := range m {
		got := math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		if got != m[i] {
			t.Errorf("element %d = %v, want %v", i, got, m[i])
		}
	}
}
