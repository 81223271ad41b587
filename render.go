package jsonmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders v for debugging. Strings are written raw, without quotes
// or escaping, infinite floats as inf and -inf, and every object entry is
// followed by " , ", including the last one:
//
//	[1, b, 10, 64]
//	{a: 1 , b: 2 , }
func (v Value[K]) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

// String renders m as an Object value would be rendered.
func (m *Map[K]) String() string {
	var b strings.Builder
	m.render(&b)
	return b.String()
}

func (v Value[K]) render(b *strings.Builder) {
	switch v.kind {
	case KindBoolean:
		b.WriteString(strconv.FormatBool(v.b))
	case KindInt64:
		b.WriteString(strconv.FormatInt(v.i64, 10))
	case KindInt32:
		b.WriteString(strconv.FormatInt(int64(v.i32), 10))
	case KindFloat64:
		renderFloat(b, v.f64, 64)
	case KindFloat32:
		renderFloat(b, float64(v.f32), 32)
	case KindString:
		b.WriteString(v.s)
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			e.render(b)
		}
		b.WriteByte(']')
	case KindObject:
		v.obj.render(b)
	}
}

func renderFloat(b *strings.Builder, f float64, bits int) {
	switch {
	case math.IsInf(f, 1):
		b.WriteString("inf")
	case math.IsInf(f, -1):
		b.WriteString("-inf")
	default:
		b.WriteString(strconv.FormatFloat(f, 'f', -1, bits))
	}
}

func (m *Map[K]) render(b *strings.Builder) {
	b.WriteByte('{')
	for k, v := range m.All() {
		fmt.Fprint(b, k)
		b.WriteString(": ")
		v.render(b)
		b.WriteString(" , ")
	}
	b.WriteByte('}')
}
