package gotable

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// PathSeparator joins the segments of a nested field path, e.g. "user__name".
const PathSeparator = "__"

// Record is a dynamic row, e.g. a decoded JSON object or a row loaded into a map.
type Record = map[string]any

// Accessor extracts a field value from a record. A nil result means the field
// is missing.
type Accessor[T any] func(record T) any

// PathAccessor builds an Accessor for a nested field path. The path is split
// once; every call walks maps, structs and pointers level by level.
//
// Struct fields are matched by Go name, by `json` tag or by name ignoring case
// and underscores ("created_at" matches CreatedAt). Any missing level resolves
// to nil.
func PathAccessor[T any](path string) Accessor[T] {
	segments := strings.Split(path, PathSeparator)

	return func(record T) any {
		return resolvePath(record, segments)
	}
}

// ValueForSort resolves path on record and returns the normalized primitive
// used for ordering: nil (missing or empty), bool, int64, uint64, float64,
// time.Time or string.
func ValueForSort[T any](path string, record T) any {
	return sortValueOf(PathAccessor[T](path)(record)).value
}

func resolvePath(v any, segments []string) any {
	current := v
	for _, segment := range segments {
		current = lookupField(current, segment)
		if current == nil {
			return nil
		}
	}

	return current
}

func lookupField(v any, name string) any {
	if m, ok := v.(Record); ok {
		return m[name]
	}

	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}

		item := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !item.IsValid() {
			return nil
		}

		return item.Interface()
	case reflect.Struct:
		idx, found := structFieldIndex(rv.Type(), name)
		if !found {
			return nil
		}

		return rv.Field(idx).Interface()
	default:
		return nil
	}
}

func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}

	return rv, rv.IsValid()
}

func structFieldIndex(t reflect.Type, name string) (int, bool) {
	loose := looseName(name)

	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Name == name {
			return i, true
		}

		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == name {
			return i, true
		}

		if fallback == -1 && looseName(field.Name) == loose {
			fallback = i
		}
	}

	return fallback, fallback != -1
}

func looseName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// Text returns the textual form of a field value used for searching and
// display. Missing values yield an empty string.
func Text(v any) string {
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return ""
	}

	switch vt := rv.Interface().(type) {
	case string:
		return vt
	case time.Time:
		return vt.Format(time.RFC3339)
	case fmt.Stringer:
		return vt.String()
	default:
		return fmt.Sprint(vt)
	}
}
