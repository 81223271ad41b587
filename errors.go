package jsonmap

import "errors"

var (
	// ErrNoVariant is returned when decoded data fits none of the Value
	// variants, for example a JSON null.
	ErrNoVariant = errors.New("data matches no value variant")

	// ErrUnsupportedValue is returned when a value cannot be represented in
	// the target encoding, such as a NaN or infinite float in JSON.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrUnsupportedKey is returned when a key cannot be converted to or from
	// the textual object names of a wire format.
	ErrUnsupportedKey = errors.New("unsupported key type")

	// ErrNotObject is returned when a Map is decoded from data that is not
	// an object.
	ErrNotObject = errors.New("map requires an object")
)
