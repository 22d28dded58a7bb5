package tree

import (
	"reflect"
	"regexp"
	"time"
)

// Clone returns a deep copy of v.
//
// The JSON-like shapes (map[string]any, []any) are copied without reflection.
// Regular expressions are recompiled, time values are copied by value and all
// other maps, slices, arrays, pointers and structs are copied via reflection.
// Unexported struct fields are left at their zero value. Cycles are not detected;
// record trees are expected to be acyclic.
func Clone(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if tv == nil {
			return map[string]any(nil)
		}
		m := make(map[string]any, len(tv))
		for k, vv := range tv {
			m[k] = Clone(vv)
		}
		return m
	case []any:
		if tv == nil {
			return []any(nil)
		}
		s := make([]any, len(tv))
		for i, vv := range tv {
			s[i] = Clone(vv)
		}
		return s
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return tv
	case time.Time:
		return tv
	case *regexp.Regexp:
		if tv == nil {
			return tv
		}
		return regexp.MustCompile(tv.String())
	}

	cloned := cloneValue(reflect.ValueOf(v))
	if !cloned.IsValid() {
		return nil
	}
	return cloned.Interface()
}

// CloneMap deep copies a record root. A nil map yields an empty map.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return Clone(m).(map[string]any)
}

// cloneValue is the reflection fallback for values not covered by Clone's fast paths
func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := reflect.ValueOf(Clone(v.Elem().Interface()))
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Struct:
		// time.Time and friends keep unexported state, copy them by value
		if !hasExportedFields(v.Type()) {
			return v
		}
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneElem(iter.Value(), v.Type().Elem()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return clone
	default:
		return v
	}
}

// cloneElem clones a map/slice element and makes sure it is assignable to elemType
func cloneElem(v reflect.Value, elemType reflect.Type) reflect.Value {
	cloned := cloneValue(v)
	if !cloned.IsValid() {
		return reflect.Zero(elemType)
	}
	if cloned.Type() != elemType {
		return cloned.Convert(elemType)
	}
	return cloned
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}
