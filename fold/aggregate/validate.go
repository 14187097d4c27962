package aggregate

import (
	"reflect"

	"github.com/lguimbarda/min-fold/fold/core"
)

// validate checks the arguments of a fold call, in order: source, combiner,
// then transform when the arity takes one. It runs before the context is
// looked at and before any element is pulled.
func validate[T any](src core.Source[T], combinerNil bool, arity core.Arity, transformNil bool) error {
	if isNilSource(src) {
		return core.ErrNilSource
	}
	if combinerNil {
		return core.ErrNilCombiner
	}
	if arity == core.SeededTransform && transformNil {
		return core.ErrNilTransform
	}
	return nil
}

// isNilSource reports a nil interface or an interface holding a nil
// pointer, func, map, slice or channel, such as a nil core.Emitter.
func isNilSource[T any](src core.Source[T]) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
