package bff

import "reflect"

// ValueToList returns v unchanged when it is already a slice or array,
// and otherwise wraps it in a single-element slice of its own type.
// Strings count as scalars here, the way parameter handling usually
// wants them, so "x" becomes []string{"x"} rather than its bytes.
func ValueToList(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return v
	case reflect.Invalid:
		return []any{nil}
	}

	list := reflect.MakeSlice(reflect.SliceOf(rv.Type()), 0, 1)
	return reflect.Append(list, rv).Interface()
}

// KwargsToLists applies ValueToList to every value of kwargs, in place,
// and returns the map. Callers accepting mixed scalar-or-list parameters
// use it to treat everything uniformly as lists afterwards.
func KwargsToLists(kwargs map[string]any) map[string]any {
	for key, value := range kwargs {
		kwargs[key] = ValueToList(value)
	}
	return kwargs
}
