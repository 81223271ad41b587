package jsonmap

import (
	"fmt"
	"math"
)

// Convertible lists the Go types Of accepts. float32 is intentionally not a
// member: a Float32 value can only be built with Float32.
type Convertible[K comparable] interface {
	bool | int32 | int64 | float64 | string | []Value[K] | *Map[K]
}

// Of wraps a Go value in the matching variant: bool as Boolean, int32 as
// Int32, int64 as Int64, float64 as Float64, string as String, a slice of
// values as Array (the slice is owned, not copied) and a map as Object.
//
// Integer constants must be given a width, e.g. Of[string](int32(42)).
func Of[K comparable, T Convertible[K]](v T) Value[K] {
	switch x := any(v).(type) {
	case bool:
		return Bool[K](x)
	case int32:
		return Int32[K](x)
	case int64:
		return Int64[K](x)
	case float64:
		return Float64[K](x)
	case string:
		return String[K](x)
	case []Value[K]:
		return Array(x...)
	case *Map[K]:
		return Object(x)
	}
	panic(fmt.Sprintf("jsonmap: unreachable conversion from %T", v))
}

// FromSlice returns an Array holding deep copies of s.
func FromSlice[K comparable](s []Value[K]) Value[K] {
	return Array(cloneValues(s)...)
}

// FromAny converts a generic Go tree, as produced by most decoders into an
// any, into a Value. Go integers become Int64 and Go floats become Float64,
// following the trial order; an unsigned integer too large for int64 falls
// through to Float64. Object keys are parsed into K with the key codec.
func FromAny[K comparable](x any) (Value[K], error) {
	switch t := x.(type) {
	case Value[K]:
		return t, nil
	case *Map[K]:
		return Object(t), nil
	case bool:
		return Bool[K](t), nil
	case int:
		return Int64[K](int64(t)), nil
	case int64:
		return Int64[K](t), nil
	case int32:
		return Int64[K](int64(t)), nil
	case uint64:
		if t <= math.MaxInt64 {
			return Int64[K](int64(t)), nil
		}
		return Float64[K](float64(t)), nil
	case float64:
		return Float64[K](t), nil
	case float32:
		return Float64[K](float64(t)), nil
	case string:
		return String[K](t), nil
	case []any:
		arr := make([]Value[K], 0, len(t))
		for i, e := range t {
			ev, err := FromAny[K](e)
			if err != nil {
				return Value[K]{}, fmt.Errorf("array element %d: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return Array(arr...), nil
	case []map[string]any:
		arr := make([]Value[K], 0, len(t))
		for i, e := range t {
			ev, err := FromAny[K](e)
			if err != nil {
				return Value[K]{}, fmt.Errorf("array element %d: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return Array(arr...), nil
	case map[string]any:
		m := NewMap[K]()
		for name, e := range t {
			k, err := parseKey[K](name)
			if err != nil {
				return Value[K]{}, err
			}
			ev, err := FromAny[K](e)
			if err != nil {
				return Value[K]{}, fmt.Errorf("object value for key %q: %w", name, err)
			}
			m.Insert(k, ev)
		}
		return Object(m), nil
	case map[K]any:
		m := NewMap[K]()
		for k, e := range t {
			ev, err := FromAny[K](e)
			if err != nil {
				return Value[K]{}, fmt.Errorf("object value for key %v: %w", k, err)
			}
			m.Insert(k, ev)
		}
		return Object(m), nil
	}
	return Value[K]{}, fmt.Errorf("%w: Go type %T", ErrNoVariant, x)
}
