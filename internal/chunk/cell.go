package chunk

import (
	"fmt"
	"reflect"
	"sync"
)

// Cell is the element constraint for chunks. Beyond comparability, cell
// types must be plain data: booleans, integers, and arrays or unpadded
// structs of them. Floats are rejected because NaN and signed zero make ==
// disagree with the bytes Hash reads. That part cannot be expressed as a
// type constraint and is checked by the constructors.
type Cell interface {
	comparable
}

var plainTypes sync.Map // reflect.Type -> bool

// checkPlain panics with ErrNotPlainData when C owns references.
func checkPlain[C Cell]() {
	t := reflect.TypeFor[C]()
	if ok, cached := plainTypes.Load(t); cached {
		if !ok.(bool) {
			panic(fmt.Errorf("%w: %s", ErrNotPlainData, t))
		}
		return
	}
	ok := isPlain(t)
	plainTypes.Store(t, ok)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrNotPlainData, t))
	}
}

func isPlain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Array:
		return isPlain(t.Elem())
	case reflect.Struct:
		// Padding bytes are not covered by == but are read by Hash.
		var size uintptr
		for i := range t.NumField() {
			f := t.Field(i).Type
			if !isPlain(f) {
				return false
			}
			size += f.Size()
		}
		return size == t.Size()
	default:
		return false
	}
}
