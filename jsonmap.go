// Package jsonmap stores heterogeneous JSON-like values in one map.
//
// A Map associates keys of any comparable type with a Value. A Value holds
// exactly one of eight variants: a boolean, a 64 or 32 bit integer, a 64 or
// 32 bit float, a string, an ordered array of values or a nested Map.
//
//	m := jsonmap.NewMap[string]()
//	m.Insert("key1", jsonmap.Of[string](int32(42)))
//	m.Insert("key2", jsonmap.Of[string](190.5))
//	m.Insert("key3", jsonmap.Of[string]("中国"))
//	fmt.Println(m) // {key1: 42 , key2: 190.5 , key3: 中国 , }
//
// Maps and values encode to JSON, YAML, CBOR and TOML without any variant
// discriminator: a Map is written as a plain object of its entries, and a
// Value as whatever literal, array or object its variant produces. When
// decoding, the variant is inferred from the shape of the data by trying
// the kinds in declaration order (KindBoolean, KindInt64, KindInt32,
// KindFloat64, KindFloat32, KindString, KindArray, KindObject) and keeping
// the first that fits. As a result an Int32 generally comes back as an
// Int64, and a Float32 as a Float64.
//
// A Map is not safe for concurrent use. Readers may share it; writers need
// exclusive access.
package jsonmap

import "strconv"

// Kind identifies the variant held by a Value.
//
// The declaration order is the decode trial order for untagged input and
// must not change.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindInt64
	KindInt32
	KindFloat64
	KindFloat32
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindBoolean: "Boolean",
	KindInt64:   "Int64",
	KindInt32:   "Int32",
	KindFloat64: "Float64",
	KindFloat32: "Float32",
	KindString:  "String",
	KindArray:   "Array",
	KindObject:  "Object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
