package jsonmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalYAML returns the plain Go form of v, so the YAML encoder emits a
// bare scalar, sequence or mapping. Floats are written as !!float scalars
// that always carry a fraction or exponent.
func (v Value[K]) MarshalYAML() (any, error) {
	switch v.kind {
	case KindBoolean:
		return v.b, nil
	case KindInt64:
		return v.i64, nil
	case KindInt32:
		return v.i32, nil
	case KindFloat64:
		return floatNode(v.f64, 64), nil
	case KindFloat32:
		return floatNode(float64(v.f32), 32), nil
	case KindString:
		return v.s, nil
	case KindArray:
		if v.arr == nil {
			return []Value[K]{}, nil
		}
		return v.arr, nil
	case KindObject:
		return v.obj, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, v.kind)
}

// UnmarshalYAML decodes a node into the first variant, in trial order, whose
// shape matches the node's kind and resolved tag. Null nodes match nothing.
func (v *Value[K]) UnmarshalYAML(n *yaml.Node) error {
	n = resolveNode(n)
	out, err := untagged[K](func(kind Kind) (Value[K], bool, error) {
		return probeYAML[K](n, kind)
	}, fmt.Sprintf("YAML %s at line %d", n.ShortTag(), n.Line))
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func floatNode(f float64, bits int) *yaml.Node {
	var text string
	switch {
	case math.IsNaN(f):
		text = ".nan"
	case math.IsInf(f, 1):
		text = ".inf"
	case math.IsInf(f, -1):
		text = "-.inf"
	default:
		text = strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
}

func probeYAML[K comparable](n *yaml.Node, kind Kind) (Value[K], bool, error) {
	tag := n.ShortTag()
	scalar := n.Kind == yaml.ScalarNode
	switch kind {
	case KindBoolean:
		var b bool
		if scalar && tag == "!!bool" && n.Decode(&b) == nil {
			return Bool[K](b), true, nil
		}
	case KindInt64:
		var i int64
		if scalar && tag == "!!int" && n.Decode(&i) == nil {
			return Int64[K](i), true, nil
		}
	case KindInt32:
		var i int32
		if scalar && tag == "!!int" && n.Decode(&i) == nil {
			return Int32[K](i), true, nil
		}
	case KindFloat64:
		var f float64
		if scalar && (tag == "!!float" || tag == "!!int") && n.Decode(&f) == nil {
			return Float64[K](f), true, nil
		}
	case KindFloat32:
		var f float32
		if scalar && (tag == "!!float" || tag == "!!int") && n.Decode(&f) == nil {
			return Float32[K](f), true, nil
		}
	case KindString:
		var s string
		if scalar && (tag == "!!str" || tag == "!!timestamp" || tag == "!!binary") && n.Decode(&s) == nil {
			return String[K](s), true, nil
		}
	case KindArray:
		if n.Kind != yaml.SequenceNode {
			break
		}
		arr := make([]Value[K], len(n.Content))
		for i, c := range n.Content {
			if err := arr[i].UnmarshalYAML(c); err != nil {
				return Value[K]{}, false, fmt.Errorf("read sequence element %d: %w", i, err)
			}
		}
		return Array(arr...), true, nil
	case KindObject:
		if n.Kind != yaml.MappingNode {
			break
		}
		m := NewMap[K]()
		if err := m.UnmarshalYAML(n); err != nil {
			return Value[K]{}, false, err
		}
		return Object(m), true, nil
	}
	return Value[K]{}, false, nil
}

// MarshalYAML returns a mapping node holding the entries of m in iteration
// order.
func (m *Map[K]) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range m.All() {
		kn, vn := new(yaml.Node), new(yaml.Node)
		if err := kn.Encode(k); err != nil {
			return nil, fmt.Errorf("encode key %v: %w", k, err)
		}
		if err := vn.Encode(v); err != nil {
			return nil, fmt.Errorf("encode value for key %v: %w", k, err)
		}
		n.Content = append(n.Content, kn, vn)
	}
	return n, nil
}

// UnmarshalYAML inserts every pair of a mapping node into m. Repeated keys
// keep the last value.
func (m *Map[K]) UnmarshalYAML(n *yaml.Node) error {
	n = resolveNode(n)
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: got YAML %s at line %d", ErrNotObject, n.ShortTag(), n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		var k K
		if err := resolveNode(kn).Decode(&k); err != nil {
			return fmt.Errorf("read mapping key at line %d: %w", kn.Line, err)
		}
		var v Value[K]
		if err := v.UnmarshalYAML(vn); err != nil {
			return fmt.Errorf("read mapping value for key %v: %w", k, err)
		}
		m.Insert(k, v)
	}
	return nil
}

// resolveNode follows aliases and unwraps document nodes.
func resolveNode(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		default:
			return n
		}
	}
}
