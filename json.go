package jsonmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// MarshalJSONTo writes v without any variant tag: booleans, numbers and
// strings as JSON literals, arrays as JSON arrays and objects as the bare
// members of their map. Floats always carry a fraction or exponent so they
// are not read back as integers. Non-finite floats are rejected.
func (v Value[K]) MarshalJSONTo(enc *jsontext.Encoder) error {
	switch v.kind {
	case KindBoolean:
		return enc.WriteToken(jsontext.Bool(v.b))
	case KindInt64:
		return enc.WriteToken(jsontext.Int(v.i64))
	case KindInt32:
		return enc.WriteToken(jsontext.Int(int64(v.i32)))
	case KindFloat64:
		return writeFloat(enc, v.f64, 64)
	case KindFloat32:
		return writeFloat(enc, float64(v.f32), 32)
	case KindString:
		return enc.WriteToken(jsontext.String(v.s))
	case KindArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return fmt.Errorf("write array open: %w", err)
		}
		for i, e := range v.arr {
			if err := e.MarshalJSONTo(enc); err != nil {
				return fmt.Errorf("write array element %d: %w", i, err)
			}
		}
		if err := enc.WriteToken(jsontext.EndArray); err != nil {
			return fmt.Errorf("write array close: %w", err)
		}
		return nil
	case KindObject:
		return v.obj.MarshalJSONTo(enc)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedValue, v.kind)
}

func writeFloat(enc *jsontext.Encoder, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: float %v", ErrUnsupportedValue, f)
	}
	buf := strconv.AppendFloat(nil, f, 'g', -1, bits)
	if !strings.ContainsAny(string(buf), ".eE") {
		buf = append(buf, ".0"...)
	}
	return enc.WriteValue(jsontext.Value(buf))
}

// UnmarshalJSONFrom reads one JSON value and stores the first variant, in
// trial order, that can hold it. A number without fraction or exponent
// decodes as an Int64 when it fits, and JSON null matches nothing. Arrays
// and objects are streamed from dec, so its options apply at every depth.
func (v *Value[K]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	rk := dec.PeekKind()
	var raw jsontext.Value
	if rk != '[' && rk != '{' {
		var err error
		if raw, err = dec.ReadValue(); err != nil {
			return fmt.Errorf("read value: %w", err)
		}
	}
	out, err := untagged[K](func(kind Kind) (Value[K], bool, error) {
		return probeJSON[K](dec, raw, rk, kind)
	}, "JSON "+rk.String())
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// probeJSON tries kind against the scalar raw, or streams the array or
// object starting at dec when rk opens one.
func probeJSON[K comparable](dec *jsontext.Decoder, raw jsontext.Value, rk jsontext.Kind, kind Kind) (Value[K], bool, error) {
	switch kind {
	case KindBoolean:
		var b bool
		if (rk == 't' || rk == 'f') && json.Unmarshal(raw, &b) == nil {
			return Bool[K](b), true, nil
		}
	case KindInt64:
		var n int64
		if rk == '0' && json.Unmarshal(raw, &n) == nil {
			return Int64[K](n), true, nil
		}
	case KindInt32:
		var n int32
		if rk == '0' && json.Unmarshal(raw, &n) == nil {
			return Int32[K](n), true, nil
		}
	case KindFloat64:
		var f float64
		if rk == '0' && json.Unmarshal(raw, &f) == nil {
			return Float64[K](f), true, nil
		}
	case KindFloat32:
		var f float32
		if rk == '0' && json.Unmarshal(raw, &f) == nil {
			return Float32[K](f), true, nil
		}
	case KindString:
		var s string
		if rk == '"' && json.Unmarshal(raw, &s) == nil {
			return String[K](s), true, nil
		}
	case KindArray:
		if rk != '[' {
			break
		}
		if _, err := dec.ReadToken(); err != nil { // '['
			return Value[K]{}, false, fmt.Errorf("read array open: %w", err)
		}
		arr := []Value[K]{}
		for i := 0; dec.PeekKind() != ']'; i++ {
			var e Value[K]
			if err := e.UnmarshalJSONFrom(dec); err != nil {
				return Value[K]{}, false, fmt.Errorf("read array element %d: %w", i, err)
			}
			arr = append(arr, e)
		}
		if _, err := dec.ReadToken(); err != nil { // ']'
			return Value[K]{}, false, fmt.Errorf("read array close: %w", err)
		}
		return Array(arr...), true, nil
	case KindObject:
		if rk != '{' {
			break
		}
		m := NewMap[K]()
		if err := m.UnmarshalJSONFrom(dec); err != nil {
			return Value[K]{}, false, err
		}
		return Object(m), true, nil
	}
	return Value[K]{}, false, nil
}

// MarshalJSONTo writes the entries of m as the members of a single JSON
// object, with no wrapping field. Keys are written with the key codec.
func (m *Map[K]) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for k, v := range m.All() {
		name, err := formatKey(k)
		if err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return fmt.Errorf("write object key %q: %w", name, err)
		}
		if err := v.MarshalJSONTo(enc); err != nil {
			return fmt.Errorf("write object value for key %q: %w", name, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

// UnmarshalJSONFrom reads a JSON object and inserts each member into m.
// Existing entries are kept unless a member overwrites them.
func (m *Map[K]) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '{' {
		return fmt.Errorf("%w: got JSON %v", ErrNotObject, k)
	}
	if _, err := dec.ReadToken(); err != nil { // '{'
		return fmt.Errorf("read object open: %w", err)
	}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return fmt.Errorf("read object key: %w", err)
		}
		name := tok.String()
		k, err := parseKey[K](name)
		if err != nil {
			return err
		}
		var v Value[K]
		if err := v.UnmarshalJSONFrom(dec); err != nil {
			return fmt.Errorf("read object value for key %q: %w", name, err)
		}
		m.Insert(k, v)
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return fmt.Errorf("read object close: %w", err)
	}
	return nil
}

// Unmarshalers returns unmarshalers that decode JSON objects into *Map[K]
// and JSON arrays into []Value[K] whenever the target is an any. Primitive
// values fall through to the default decoding.
//
//	var out any
//	err := json.Unmarshal(data, &out, json.WithUnmarshalers(jsonmap.Unmarshalers[string]()))
func Unmarshalers[K comparable]() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			m := NewMap[K]()
			if err := m.UnmarshalJSONFrom(dec); err != nil {
				return err
			}
			*v = m
			return nil
		case '[':
			var arr []Value[K]
			if err := json.UnmarshalDecode(dec, &arr); err != nil {
				return fmt.Errorf("read array: %w", err)
			}
			if arr == nil {
				arr = []Value[K]{}
			}
			*v = arr
			return nil
		default:
			return json.SkipFunc
		}
	})
}
