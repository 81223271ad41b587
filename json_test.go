package jsonmap

import (
	"math"
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, src string) *Map[string] {
	t.Helper()
	m := NewMap[string]()
	require.NoError(t, json.Unmarshal([]byte(src), m))
	return m
}

func requireKind(t *testing.T, m *Map[string], key string, want Kind) Value[string] {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, "missing key %q", key)
	require.Equal(t, want, v.Kind(), "key %q holds %s", key, v)
	return v
}

// sampleMap holds only variants that survive an untagged round trip.
func sampleMap() *Map[string] {
	return FromPairs(
		Pair[string]{Key: "bool", Value: Bool[string](true)},
		Pair[string]{Key: "int", Value: Int64[string](-42)},
		Pair[string]{Key: "float", Value: Float64[string](190.5)},
		Pair[string]{Key: "whole", Value: Float64[string](64)},
		Pair[string]{Key: "str", Value: String[string]("中国")},
		Pair[string]{Key: "arr", Value: Array(Int64[string](1), String[string]("b"), Float64[string](0.25))},
		Pair[string]{Key: "obj", Value: Object(FromPairs(
			Pair[string]{Key: "userid", Value: String[string]("1000230203")},
			Pair[string]{Key: "nested", Value: Array(Object[string](nil), Array[string]())},
		))},
	)
}

func TestMarshalJSON(t *testing.T) {
	t.Run("map is a bare object of its entries", func(t *testing.T) {
		m := FromPairs(
			Pair[string]{Key: "a", Value: Int32[string](1)},
			Pair[string]{Key: "b", Value: String[string]("x")},
		)
		b, err := json.Marshal(m)
		require.NoError(t, err)
		require.JSONEq(t, `{"a":1,"b":"x"}`, string(b))
	})

	t.Run("object value is flattened without wrapper", func(t *testing.T) {
		m := FromPairs(Pair[string]{Key: "outer", Value: Object(FromPairs(
			Pair[string]{Key: "inner", Value: Bool[string](false)},
		))})
		b, err := json.Marshal(m)
		require.NoError(t, err)
		require.JSONEq(t, `{"outer":{"inner":false}}`, string(b))
	})

	t.Run("values carry no variant tag", func(t *testing.T) {
		tests := []struct {
			v    Value[string]
			want string
		}{
			{Bool[string](true), `true`},
			{Int64[string](9007199254740993), `9007199254740993`},
			{Int32[string](-7), `-7`},
			{Float64[string](0.5), `0.5`},
			{Float32[string](0.1), `0.1`},
			{String[string](`say "hi"`), `"say \"hi\""`},
			{Array[string](), `[]`},
			{Array(Int32[string](1), Float64[string](64.0)), `[1,64.0]`},
			{Float32[string](3), `3.0`},
			{Float64[string](1e21), `1e+21`},
			{Object[string](nil), `{}`},
		}
		for _, tt := range tests {
			t.Run(tt.want, func(t *testing.T) {
				b, err := json.Marshal(tt.v)
				require.NoError(t, err)
				require.Equal(t, tt.want, string(b))
			})
		}
	})

	t.Run("integer keys become member names", func(t *testing.T) {
		m := FromPairs(Pair[int]{Key: 10, Value: String[int]("ten")})
		b, err := json.Marshal(m)
		require.NoError(t, err)
		require.Equal(t, `{"10":"ten"}`, string(b))
	})

	t.Run("non finite floats are an error", func(t *testing.T) {
		for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			m := FromPairs(Pair[string]{Key: "f", Value: Float64[string](f)})
			_, err := json.Marshal(m)
			require.ErrorIs(t, err, ErrUnsupportedValue)
		}

		_, err := json.Marshal(Array(Float32[string](float32(math.Inf(1)))))
		require.ErrorIs(t, err, ErrUnsupportedValue)
	})

	t.Run("unsupported key is an error", func(t *testing.T) {
		type point struct{ X int }
		m := FromPairs(Pair[point]{Key: point{1}, Value: Bool[point](true)})
		_, err := json.Marshal(m)
		require.ErrorIs(t, err, ErrUnsupportedKey)
	})
}

func TestUnmarshalJSON(t *testing.T) {
	t.Run("variant is inferred from shape", func(t *testing.T) {
		m := decodeJSON(t, `{"b":true,"i":5,"f":1.5,"e":1e2,"s":"x","a":[1,"y"],"o":{}}`)
		requireKind(t, m, "b", KindBoolean)
		requireKind(t, m, "i", KindInt64)
		requireKind(t, m, "f", KindFloat64)
		requireKind(t, m, "e", KindFloat64)
		requireKind(t, m, "s", KindString)
		a := requireKind(t, m, "a", KindArray)
		require.Equal(t, "[1, y]", a.String())
		o := requireKind(t, m, "o", KindObject)
		require.Equal(t, "{}", o.String())
	})

	t.Run("whole numbers decode as int64 first", func(t *testing.T) {
		m := decodeJSON(t, `{"small":7,"neg":-2147483649}`)
		v := requireKind(t, m, "small", KindInt64)
		n, _ := v.Int64()
		require.Equal(t, int64(7), n)
		requireKind(t, m, "neg", KindInt64)
	})

	t.Run("integers beyond int64 fall through to float64", func(t *testing.T) {
		m := decodeJSON(t, `{"big":18446744073709551615}`)
		requireKind(t, m, "big", KindFloat64)
	})

	t.Run("nested structures decode recursively", func(t *testing.T) {
		m := decodeJSON(t, `{"userInfo":{"name":"李四","age":29,"tags":["a",{"deep":[true]}]}}`)
		info := requireKind(t, m, "userInfo", KindObject)
		obj, _ := info.Object()
		age, ok := obj.Get("age")
		require.True(t, ok)
		require.Equal(t, Int64[string](29), age)
		tags, _ := obj.Get("tags")
		require.Equal(t, "[a, {deep: [true] , }]", tags.String())
	})

	t.Run("null matches no variant", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"a":null}`), NewMap[string]())
		require.ErrorIs(t, err, ErrNoVariant)

		err = json.Unmarshal([]byte(`{"a":[1,null]}`), NewMap[string]())
		require.ErrorIs(t, err, ErrNoVariant)
	})

	t.Run("map requires an object", func(t *testing.T) {
		err := json.Unmarshal([]byte(`[1,2]`), NewMap[string]())
		require.ErrorIs(t, err, ErrNotObject)
	})

	t.Run("malformed input is an error", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"a":`), NewMap[string]())
		require.Error(t, err)
	})

	t.Run("integer keys are parsed", func(t *testing.T) {
		m := NewMap[int]()
		require.NoError(t, json.Unmarshal([]byte(`{"1":"one","2":2}`), m))
		v, ok := m.Get(1)
		require.True(t, ok)
		require.Equal(t, String[int]("one"), v)

		err := json.Unmarshal([]byte(`{"x":1}`), NewMap[int]())
		require.Error(t, err)
	})

	t.Run("single value decodes in place", func(t *testing.T) {
		var v Value[string]
		require.NoError(t, json.Unmarshal([]byte(`"text"`), &v))
		require.Equal(t, String[string]("text"), v)

		require.NoError(t, json.Unmarshal([]byte(`[]`), &v))
		arr, ok := v.Array()
		require.True(t, ok)
		require.Empty(t, arr)
	})

	t.Run("decoder stream reads one value at a time", func(t *testing.T) {
		dec := jsontext.NewDecoder(strings.NewReader(`1 "two" [3]`))
		var got []string
		for dec.PeekKind() != 0 {
			var v Value[string]
			require.NoError(t, v.UnmarshalJSONFrom(dec))
			got = append(got, v.Kind().String())
		}
		require.Equal(t, []string{"Int64", "String", "Array"}, got)
	})
}

func TestUnmarshalJSON_DecoderOptions(t *testing.T) {
	t.Run("options reach nested objects", func(t *testing.T) {
		m := NewMap[string]()
		err := json.Unmarshal([]byte(`{"o":{"a":1,"a":2},"l":[{"b":1,"b":3}]}`), m, jsontext.AllowDuplicateNames(true))
		require.NoError(t, err)

		o := requireKind(t, m, "o", KindObject)
		assert.Equal(t, "{a: 2 , }", o.String())
		l := requireKind(t, m, "l", KindArray)
		assert.Equal(t, "[{b: 3 , }]", l.String())
	})

	t.Run("nested duplicates are rejected by default", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"o":{"a":1,"a":2}}`), NewMap[string]())
		require.Error(t, err)
	})

	t.Run("truncated nested input is an error", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"o":[1,{"a":`), NewMap[string]())
		require.Error(t, err)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	t.Run("round trip reproduces the structure", func(t *testing.T) {
		m := sampleMap()
		b, err := json.Marshal(m)
		require.NoError(t, err)

		got := decodeJSON(t, string(b))
		require.True(t, m.Equal(got), "got %s", got)
	})

	t.Run("narrow widths widen", func(t *testing.T) {
		m := FromPairs(
			Pair[string]{Key: "i32", Value: Int32[string](7)},
			Pair[string]{Key: "f32", Value: Float32[string](0.5)},
		)
		b, err := json.Marshal(m)
		require.NoError(t, err)

		got := decodeJSON(t, string(b))
		i, _ := got.Get("i32")
		f, _ := got.Get("f32")
		assert.Equal(t, Int64[string](7), i)
		assert.Equal(t, Float64[string](0.5), f)
	})

	t.Run("whole floats stay floats", func(t *testing.T) {
		m := FromPairs(
			Pair[string]{Key: "f", Value: Float64[string](64)},
			Pair[string]{Key: "big", Value: Float64[string](1e21)},
			Pair[string]{Key: "neg", Value: Float64[string](-3)},
		)
		b, err := json.Marshal(m)
		require.NoError(t, err)
		require.Equal(t, `{"f":64.0,"big":1e+21,"neg":-3.0}`, string(b))

		got := decodeJSON(t, string(b))
		require.True(t, m.Equal(got), "got %s", got)
	})
}

func TestUnmarshalers(t *testing.T) {
	unmarshal := func(t *testing.T, src string) any {
		t.Helper()
		var out any
		err := json.Unmarshal([]byte(src), &out, json.WithUnmarshalers(Unmarshalers[string]()))
		require.NoError(t, err)
		return out
	}

	t.Run("object becomes map", func(t *testing.T) {
		m, ok := unmarshal(t, `{"a":[1,2]}`).(*Map[string])
		require.True(t, ok)
		a, _ := m.Get("a")
		require.Equal(t, Array(Int64[string](1), Int64[string](2)), a)
	})

	t.Run("array becomes value slice", func(t *testing.T) {
		arr, ok := unmarshal(t, `[1,{"x":true}]`).([]Value[string])
		require.True(t, ok)
		require.Len(t, arr, 2)
		require.Equal(t, KindObject, arr[1].Kind())
	})

	t.Run("empty array is not nil", func(t *testing.T) {
		arr, ok := unmarshal(t, `[]`).([]Value[string])
		require.True(t, ok)
		require.NotNil(t, arr)
		require.Empty(t, arr)
	})

	t.Run("primitive value bypassed", func(t *testing.T) {
		require.Equal(t, float64(123), unmarshal(t, `123`))
		require.Equal(t, "s", unmarshal(t, `"s"`))
	})
}
