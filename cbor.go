package jsonmap

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is the canonical CBOR encoding, which sorts map keys and uses
// the shortest float form that keeps the value exact.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("jsonmap: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOR major types.
const (
	cborUint   = 0
	cborNegInt = 1
	cborText   = 3
	cborArray  = 4
	cborMap    = 5
	cborSimple = 7
)

// MarshalCBOR encodes v as a bare CBOR data item.
func (v Value[K]) MarshalCBOR() ([]byte, error) {
	switch v.kind {
	case KindBoolean:
		return cborEncMode.Marshal(v.b)
	case KindInt64:
		return cborEncMode.Marshal(v.i64)
	case KindInt32:
		return cborEncMode.Marshal(v.i32)
	case KindFloat64:
		return cborEncMode.Marshal(v.f64)
	case KindFloat32:
		return cborEncMode.Marshal(v.f32)
	case KindString:
		return cborEncMode.Marshal(v.s)
	case KindArray:
		if v.arr == nil {
			return cborEncMode.Marshal([]Value[K]{})
		}
		return cborEncMode.Marshal(v.arr)
	case KindObject:
		return v.obj.MarshalCBOR()
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, v.kind)
}

// UnmarshalCBOR decodes one data item into the first variant, in trial
// order, that matches its major type and value. CBOR keeps integers and
// floats apart, so only the width of a number can be lost.
func (v *Value[K]) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("read value: %w", ErrNoVariant)
	}
	major, info := data[0]>>5, data[0]&0x1f
	out, err := untagged[K](func(kind Kind) (Value[K], bool, error) {
		return probeCBOR[K](data, major, info, kind)
	}, fmt.Sprintf("CBOR major type %d (info %d)", major, info))
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func probeCBOR[K comparable](data []byte, major, info byte, kind Kind) (Value[K], bool, error) {
	integer := major == cborUint || major == cborNegInt
	float := major == cborSimple && info >= 25 && info <= 27
	switch kind {
	case KindBoolean:
		var b bool
		if major == cborSimple && (info == 20 || info == 21) && cbor.Unmarshal(data, &b) == nil {
			return Bool[K](b), true, nil
		}
	case KindInt64:
		var n int64
		if integer && cbor.Unmarshal(data, &n) == nil {
			return Int64[K](n), true, nil
		}
	case KindInt32:
		var n int32
		if integer && cbor.Unmarshal(data, &n) == nil {
			return Int32[K](n), true, nil
		}
	case KindFloat64:
		var f float64
		if (float || integer) && cbor.Unmarshal(data, &f) == nil {
			return Float64[K](f), true, nil
		}
	case KindFloat32:
		var f float32
		if (float || integer) && cbor.Unmarshal(data, &f) == nil {
			return Float32[K](f), true, nil
		}
	case KindString:
		var s string
		if major == cborText && cbor.Unmarshal(data, &s) == nil {
			return String[K](s), true, nil
		}
	case KindArray:
		if major != cborArray {
			break
		}
		var arr []Value[K]
		if err := cbor.Unmarshal(data, &arr); err != nil {
			return Value[K]{}, false, fmt.Errorf("read array: %w", err)
		}
		return Array(arr...), true, nil
	case KindObject:
		if major != cborMap {
			break
		}
		m := NewMap[K]()
		if err := m.UnmarshalCBOR(data); err != nil {
			return Value[K]{}, false, err
		}
		return Object(m), true, nil
	}
	return Value[K]{}, false, nil
}

// MarshalCBOR encodes m as a single CBOR map. Keys are sorted canonically,
// so the wire order does not follow iteration order.
func (m *Map[K]) MarshalCBOR() ([]byte, error) {
	flat := make(map[K]Value[K], m.Len())
	for k, v := range m.All() {
		flat[k] = v
	}
	return cborEncMode.Marshal(flat)
}

// UnmarshalCBOR inserts every pair of a CBOR map into m.
func (m *Map[K]) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 || data[0]>>5 != cborMap {
		return fmt.Errorf("%w: got CBOR %x", ErrNotObject, data[:min(len(data), 1)])
	}
	var raw map[K]cbor.RawMessage
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	for k, rv := range raw {
		var v Value[K]
		if err := v.UnmarshalCBOR(rv); err != nil {
			return fmt.Errorf("read map value for key %v: %w", k, err)
		}
		m.Insert(k, v)
	}
	return nil
}
