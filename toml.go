package jsonmap

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// WriteTOML writes m as a TOML document whose top-level keys are the
// entries of m. Keys are converted with the key codec; the encoder sorts
// them.
func (m *Map[K]) WriteTOML(w io.Writer) error {
	tree, err := m.tomlTable()
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(tree); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func (m *Map[K]) tomlTable() (map[string]any, error) {
	t := make(map[string]any, m.Len())
	for k, v := range m.All() {
		name, err := formatKey(k)
		if err != nil {
			return nil, err
		}
		tv, err := v.tomlValue()
		if err != nil {
			return nil, fmt.Errorf("table value for key %q: %w", name, err)
		}
		t[name] = tv
	}
	return t, nil
}

func (v Value[K]) tomlValue() (any, error) {
	switch v.kind {
	case KindBoolean:
		return v.b, nil
	case KindInt64:
		return v.i64, nil
	case KindInt32:
		return int64(v.i32), nil
	case KindFloat64:
		return v.f64, nil
	case KindFloat32:
		return v.f32, nil
	case KindString:
		return v.s, nil
	case KindArray:
		arr := make([]any, len(v.arr))
		for i, e := range v.arr {
			ev, err := e.tomlValue()
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			arr[i] = ev
		}
		return arr, nil
	case KindObject:
		return v.obj.tomlTable()
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, v.kind)
}

// UnmarshalTOML implements toml.Unmarshaler, so a Map can be the target of
// toml.Decode. Date and time values match no variant and fail.
func (m *Map[K]) UnmarshalTOML(data any) error {
	t, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: got TOML %T", ErrNotObject, data)
	}
	for name, x := range t {
		k, err := parseKey[K](name)
		if err != nil {
			return err
		}
		v, err := FromAny[K](x)
		if err != nil {
			return fmt.Errorf("read table value for key %q: %w", name, err)
		}
		m.Insert(k, v)
	}
	return nil
}

// DecodeTOML parses a TOML document into a new Map.
func DecodeTOML[K comparable](doc string) (*Map[K], error) {
	var raw map[string]any
	if _, err := toml.Decode(doc, &raw); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	m := NewMap[K]()
	if err := m.UnmarshalTOML(raw); err != nil {
		return nil, err
	}
	return m, nil
}
