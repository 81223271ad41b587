package jsonmap

import "fmt"

// trialOrder is the order in which untagged data is matched against the
// variants. Changing it changes how ambiguous input decodes.
var trialOrder = [...]Kind{
	KindBoolean,
	KindInt64,
	KindInt32,
	KindFloat64,
	KindFloat32,
	KindString,
	KindArray,
	KindObject,
}

// probe attempts to decode one datum as the given kind. It reports ok=false
// when the datum does not have that shape, and a non-nil error only when the
// shape matched but its contents failed to decode.
type probe[K comparable] func(kind Kind) (v Value[K], ok bool, err error)

// untagged returns the first variant in trialOrder accepted by try.
func untagged[K comparable](try probe[K], shape any) (Value[K], error) {
	for _, kind := range trialOrder {
		v, ok, err := try(kind)
		if err != nil {
			return Value[K]{}, err
		}
		if ok {
			return v, nil
		}
	}
	return Value[K]{}, fmt.Errorf("%w: %v", ErrNoVariant, shape)
}
