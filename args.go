package lightmix

import (
	"fmt"
	"reflect"
)

// argRegistry holds the values passed to MountPages, keyed by their type.
// They are injected into page methods that ask for them.
type argRegistry map[reflect.Type]reflect.Value

func (args argRegistry) addArg(v any) error {
	if v == nil {
		return nil
	}
	typ := reflect.TypeOf(v)
	if _, ok := args[typ]; ok {
		return fmt.Errorf("duplicate type %s in args registry", typ)
	}
	args[typ] = reflect.ValueOf(v)
	return nil
}

func (args argRegistry) getArg(want reflect.Type) (reflect.Value, bool) {
	if v, ok := args[want]; ok {
		return v, true
	}
	// a registered pointer satisfies a request for its element type
	if want.Kind() != reflect.Ptr {
		if v, ok := args[reflect.PointerTo(want)]; ok && !v.IsNil() {
			return v.Elem(), true
		}
	}
	for t, v := range args {
		if t.AssignableTo(want) {
			return v, true
		}
	}
	return reflect.Value{}, false
}
