// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package binder

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/shade"
	"golang.org/x/image/math/f64"
)

// ValueType is the scalar/aggregate type of one buffer entry.
type ValueType uint8

// Buffer entry value types.
const (
	// ValueTypeUint32Vec2 is a 2-component unsigned vector. Bindless
	// texture handles travel as uvec2 (low word, high word).
	ValueTypeUint32Vec2 ValueType = iota + 1

	// ValueTypeDoubleVec4 is a 4-component double vector.
	ValueTypeDoubleVec4

	// ValueTypeDoubleMat4 is a 4x4 double matrix.
	ValueTypeDoubleMat4
)

// Size returns the byte size of one value.
func (v ValueType) Size() int {
	switch v {
	case ValueTypeUint32Vec2:
		return 8
	case ValueTypeDoubleVec4:
		return 32
	case ValueTypeDoubleMat4:
		return 128
	default:
		return 0
	}
}

// TupleType is a value type with an array length.
type TupleType struct {
	Type  ValueType
	Count int
}

// BufferSpec declares one named entry of a shader buffer layout.
// Specs are pure layout: producing them never touches device state.
type BufferSpec struct {
	Name string
	Type TupleType
}

// BufferSource carries the value for one buffer entry. Sources are
// committed to the shader's parameter buffer by the draw pipeline.
type BufferSource interface {
	// Name is the buffer entry the source fills.
	Name() string

	// TupleType describes the entry layout.
	TupleType() TupleType

	// Bytes is the little-endian payload, TupleType-sized.
	Bytes() []byte
}

// bindlessHandleTupleType is the layout of a bindless texture
// handle: a 64-bit handle passed to the shader as uvec2.
var bindlessHandleTupleType = TupleType{Type: ValueTypeUint32Vec2, Count: 1}

// bindlessHandleSource is a buffer source holding one bindless
// texture handle.
type bindlessHandleSource struct {
	name  string
	value uint64
}

// NewBindlessHandleSource wraps a bindless handle as a buffer
// source. A zero handle must never occur here; it is reported as a
// coding error and the (useless) source is still returned so the
// buffer layout stays consistent.
func NewBindlessHandleSource(name string, value uint64) BufferSource {
	if value == 0 {
		shade.CodingError("invalid bindless texture handle",
			"name", name, "value", value)
	}
	return &bindlessHandleSource{name: name, value: value}
}

func (s *bindlessHandleSource) Name() string         { return s.name }
func (s *bindlessHandleSource) TupleType() TupleType { return bindlessHandleTupleType }

func (s *bindlessHandleSource) Bytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, s.value)
	return buf
}

// mat4Source is a buffer source holding one 4x4 double matrix.
type mat4Source struct {
	name  string
	value f64.Mat4
}

// NewMat4Source wraps a 4x4 matrix as a buffer source.
func NewMat4Source(name string, value f64.Mat4) BufferSource {
	return &mat4Source{name: name, value: value}
}

func (s *mat4Source) Name() string { return s.name }

func (s *mat4Source) TupleType() TupleType {
	return TupleType{Type: ValueTypeDoubleMat4, Count: 1}
}

func (s *mat4Source) Bytes() []byte {
	buf := make([]byte, 128)
	for i, v := range s.value {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// vec4Source is a buffer source holding one 4-component double
// vector, used for constant parameter fallback values.
type vec4Source struct {
	name  string
	value f64.Vec4
}

// NewVec4Source wraps a 4-component vector as a buffer source.
func NewVec4Source(name string, value f64.Vec4) BufferSource {
	return &vec4Source{name: name, value: value}
}

func (s *vec4Source) Name() string { return s.name }

func (s *vec4Source) TupleType() TupleType {
	return TupleType{Type: ValueTypeDoubleVec4, Count: 1}
}

func (s *vec4Source) Bytes() []byte {
	buf := make([]byte, 32)
	for i, v := range s.value {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}
