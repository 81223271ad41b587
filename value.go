package jsonmap

import "math"

// Value is a JSON-like datum holding exactly one variant.
//
// The zero Value is a Boolean false. Array and Object payloads are held by
// reference, so assigning a Value shares them; use Clone for an independent
// copy.
type Value[K comparable] struct {
	kind Kind
	b    bool
	i64  int64
	i32  int32
	f64  float64
	f32  float32
	s    string
	arr  []Value[K]
	obj  *Map[K]
}

// Bool returns a Boolean value.
func Bool[K comparable](b bool) Value[K] { return Value[K]{kind: KindBoolean, b: b} }

// Int64 returns an Int64 value.
func Int64[K comparable](n int64) Value[K] { return Value[K]{kind: KindInt64, i64: n} }

// Int32 returns an Int32 value.
func Int32[K comparable](n int32) Value[K] { return Value[K]{kind: KindInt32, i32: n} }

// Float64 returns a Float64 value.
func Float64[K comparable](f float64) Value[K] { return Value[K]{kind: KindFloat64, f64: f} }

// Float32 returns a Float32 value. It is the only way to build one; Of does
// not accept float32.
func Float32[K comparable](f float32) Value[K] { return Value[K]{kind: KindFloat32, f32: f} }

// String returns a String value.
func String[K comparable](s string) Value[K] { return Value[K]{kind: KindString, s: s} }

// Array returns an Array value owning elems.
func Array[K comparable](elems ...Value[K]) Value[K] {
	if elems == nil {
		elems = []Value[K]{}
	}
	return Value[K]{kind: KindArray, arr: elems}
}

// Object returns an Object value owning m. A nil m yields an empty map.
func Object[K comparable](m *Map[K]) Value[K] {
	if m == nil {
		m = NewMap[K]()
	}
	return Value[K]{kind: KindObject, obj: m}
}

// Kind reports the active variant.
func (v Value[K]) Kind() Kind { return v.kind }

func (v Value[K]) Bool() (bool, bool) { return v.b, v.kind == KindBoolean }

func (v Value[K]) Int64() (int64, bool) { return v.i64, v.kind == KindInt64 }

func (v Value[K]) Int32() (int32, bool) { return v.i32, v.kind == KindInt32 }

func (v Value[K]) Float64() (float64, bool) { return v.f64, v.kind == KindFloat64 }

func (v Value[K]) Float32() (float32, bool) { return v.f32, v.kind == KindFloat32 }

// Str returns the payload of a String value.
func (v Value[K]) Str() (string, bool) { return v.s, v.kind == KindString }

// Array returns the elements of an Array value. The slice is the value's
// own storage: writes to its elements are visible through v.
func (v Value[K]) Array() ([]Value[K], bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Object returns the map owned by an Object value.
func (v Value[K]) Object() (*Map[K], bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Clone returns a deep copy of v.
func (v Value[K]) Clone() Value[K] {
	switch v.kind {
	case KindArray:
		return Value[K]{kind: KindArray, arr: cloneValues(v.arr)}
	case KindObject:
		return Value[K]{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

func cloneValues[K comparable](vs []Value[K]) []Value[K] {
	out := make([]Value[K], len(vs))
	for i, e := range vs {
		out[i] = e.Clone()
	}
	return out
}

// Equal reports whether v and o hold the same variant with structurally
// equal payloads. Values of different variants are never equal, even when
// they hold the same number. NaN floats compare equal to themselves.
func (v Value[K]) Equal(o Value[K]) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBoolean:
		return v.b == o.b
	case KindInt64:
		return v.i64 == o.i64
	case KindInt32:
		return v.i32 == o.i32
	case KindFloat64:
		return v.f64 == o.f64 || math.IsNaN(v.f64) && math.IsNaN(o.f64)
	case KindFloat32:
		return v.f32 == o.f32 || math.IsNaN(float64(v.f32)) && math.IsNaN(float64(o.f32))
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}
