package gotable

import (
	"cmp"
	"encoding/json"
	"reflect"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two records. It returns a negative number when a goes
// before b, a positive number when a goes after b and zero when they are equal.
type Comparator[T any] func(a, b T) int

// valueKind ranks values of different kinds against each other.
// Missing values always rank first.
type valueKind int

const (
	kindMissing valueKind = iota
	kindBool
	kindNumber
	kindTime
	kindString
)

type sortValue struct {
	kind  valueKind
	value any
}

func (v sortValue) missing() bool {
	return v.kind == kindMissing
}

var _timeType = reflect.TypeOf(time.Time{})

// sortValueOf normalizes a raw field value into a comparable primitive.
func sortValueOf(v any) sortValue {
	if n, ok := v.(json.Number); ok {
		if n == "" {
			return sortValue{kind: kindMissing}
		}

		if i, err := n.Int64(); err == nil {
			return sortValue{kind: kindNumber, value: i}
		}

		f, err := n.Float64()
		if err != nil {
			return sortValue{kind: kindString, value: n.String()}
		}

		return sortValue{kind: kindNumber, value: f}
	}

	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return sortValue{kind: kindMissing}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return sortValue{kind: kindBool, value: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sortValue{kind: kindNumber, value: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return sortValue{kind: kindNumber, value: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return sortValue{kind: kindNumber, value: rv.Float()}
	case reflect.String:
		if rv.Len() == 0 {
			return sortValue{kind: kindMissing}
		}

		return sortValue{kind: kindString, value: rv.String()}
	}

	if rv.Type() == _timeType {
		t := rv.Interface().(time.Time)
		if t.IsZero() {
			return sortValue{kind: kindMissing}
		}

		return sortValue{kind: kindTime, value: t}
	}

	text := Text(rv.Interface())
	if text == "" {
		return sortValue{kind: kindMissing}
	}

	return sortValue{kind: kindString, value: text}
}

// compareSortValues orders two present values. Values of different kinds are
// ordered by kind: bool < number < time < string.
func compareSortValues(a, b sortValue, collator *collate.Collator) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case kindBool:
		av, bv := a.value.(bool), b.value.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return compareNumbers(a.value, b.value)
	case kindTime:
		return a.value.(time.Time).Compare(b.value.(time.Time))
	case kindString:
		return collator.CompareString(a.value.(string), b.value.(string))
	default:
		return 0
	}
}

// compareNumbers orders int64, uint64 and float64 values. Integers are compared
// exactly and only fall back to float64 against a float.
func compareNumbers(a, b any) int {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmp.Compare(av, bv)
		case uint64:
			if av < 0 {
				return -1
			}
			return cmp.Compare(uint64(av), bv)
		}
	case uint64:
		switch bv := b.(type) {
		case uint64:
			return cmp.Compare(av, bv)
		case int64:
			return -compareNumbers(bv, av)
		}
	}

	return cmp.Compare(numberFloat(a), numberFloat(b))
}

func numberFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return v.(float64)
	}
}

// newCollator returns a case-insensitive collator for the locale. A collator
// keeps internal buffers and must not be shared between goroutines.
func newCollator(locale language.Tag) *collate.Collator {
	return collate.New(locale, collate.IgnoreCase)
}

// CompareValues orders two raw field values the way the sort stage does in
// ascending direction: missing values first, then by kind, then by value.
// Strings are compared case-insensitively for the given locale.
func CompareValues(a, b any, locale language.Tag) int {
	return compareWithMissing(sortValueOf(a), sortValueOf(b), false, newCollator(locale))
}

// compareWithMissing keeps missing values first regardless of direction.
func compareWithMissing(a, b sortValue, desc bool, collator *collate.Collator) int {
	switch {
	case a.missing() && b.missing():
		return 0
	case a.missing():
		return -1
	case b.missing():
		return 1
	}

	c := compareSortValues(a, b, collator)
	if desc {
		return -c
	}

	return c
}
