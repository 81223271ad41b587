package jsonmap

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// formatKey renders a key as an object member name. Keys implementing
// encoding.TextMarshaler use it; otherwise strings, integers, unsigned
// integers, booleans and floats are formatted by kind.
func formatKey[K comparable](k K) (string, error) {
	if tm, ok := any(k).(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal key %v: %w", k, err)
		}
		return string(b), nil
	}
	rv := reflect.ValueOf(k)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedKey, k)
}

// parseKey is the inverse of formatKey.
func parseKey[K comparable](s string) (K, error) {
	var k K
	if tu, ok := any(&k).(encoding.TextUnmarshaler); ok {
		if err := tu.UnmarshalText([]byte(s)); err != nil {
			return k, fmt.Errorf("unmarshal key %q: %w", s, err)
		}
		return k, nil
	}
	rv := reflect.ValueOf(&k).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
		return k, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return k, fmt.Errorf("parse key %q: %w", s, err)
		}
		rv.SetInt(n)
		return k, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return k, fmt.Errorf("parse key %q: %w", s, err)
		}
		rv.SetUint(n)
		return k, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return k, fmt.Errorf("parse key %q: %w", s, err)
		}
		rv.SetBool(b)
		return k, nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return k, fmt.Errorf("parse key %q: %w", s, err)
		}
		rv.SetFloat(f)
		return k, nil
	case reflect.Interface:
		if sv := reflect.ValueOf(s); sv.Type().AssignableTo(rv.Type()) {
			rv.Set(sv)
			return k, nil
		}
	}
	return k, fmt.Errorf("%w: %s", ErrUnsupportedKey, rv.Type())
}
