package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// undefined is the type of Undefined.
type undefined struct{}

// Undefined marks an absent children payload. At the top level of
// ToChildArray it (like a nil interface) is dropped; inside a nested
// sequence it becomes a placeholder so sibling positions stay stable.
var Undefined any = undefined{}

// CoerceFunc converts a raw leaf value into a descriptor.
type CoerceFunc func(raw any) *VNode

// ToChildArray flattens a possibly nested children payload onto flattened
// and returns the extended slice.
//
//   - Undefined or a nil interface is dropped, unless coerceUndef is set,
//     in which case it becomes a placeholder.
//   - A nil *VNode or a bool becomes a placeholder.
//   - A slice or array is flattened in place with coerceUndef forced on.
//   - Anything else is passed through coerce (Coerce when nil).
func ToChildArray(children any, flattened []*VNode, coerce CoerceFunc, coerceUndef bool) []*VNode {
	if coerce == nil {
		coerce = Coerce
	}
	if flattened == nil {
		flattened = make([]*VNode, 0, 4)
	}

	switch v := children.(type) {
	case nil, undefined:
		if coerceUndef {
			flattened = append(flattened, nil)
		}
	case bool:
		flattened = append(flattened, nil)
	case *VNode:
		if v == nil {
			flattened = append(flattened, nil)
		} else {
			flattened = append(flattened, coerce(v))
		}
	case []any:
		for _, c := range v {
			flattened = ToChildArray(c, flattened, coerce, true)
		}
	case []*VNode:
		for _, c := range v {
			flattened = ToChildArray(c, flattened, coerce, true)
		}
	case string:
		flattened = append(flattened, coerce(v))
	default:
		rv := reflect.ValueOf(children)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				flattened = ToChildArray(rv.Index(i).Interface(), flattened, coerce, true)
			}
			return flattened
		}
		flattened = append(flattened, coerce(children))
	}
	return flattened
}

// Coerce converts a raw leaf into a descriptor. It never fails: descriptors
// pass through, component types become component descriptors, strings,
// numbers and fmt.Stringers become text, and anything else becomes the text
// of its %v form.
func Coerce(raw any) *VNode {
	switch v := raw.(type) {
	case *VNode:
		return v
	case *ComponentType:
		if v == nil {
			return nil
		}
		return C(v)
	case string:
		return Text(v)
	case int:
		return Text(strconv.Itoa(v))
	case int64:
		return Text(strconv.FormatInt(v, 10))
	case float64:
		return Text(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		return Text(v.String())
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}
