package table

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Valuer is implemented by rows that resolve their own column keys.
type Valuer interface {
	Value(key string) (any, bool)
}

// Resolve looks up a dotted path such as "owner.name" inside row.
// Each segment is resolved against a Valuer, a map with string keys, or a
// struct (json tag name first, then field name). A missing segment yields nil.
func Resolve(row any, path string) any {
	cur := row
	for _, seg := range strings.Split(path, ".") {
		v, ok := field(cur, seg)
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func field(v any, key string) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case Valuer:
		return x.Value(key)
	case map[string]any:
		val, ok := x[key]
		return val, ok
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true

	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == key || f.Name == key {
				return rv.Field(i).Interface(), true
			}
		}
	}

	return nil, false
}

// compare orders two resolved values: numbers numerically, strings
// lexicographically, times chronologically. Anything else, including values
// of different kinds, compares equal.
func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
		return 0
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
		return 0
	}

	fa, ok := number(a)
	if !ok {
		return 0
	}
	fb, ok := number(b)
	if !ok {
		return 0
	}
	return cmp.Compare(fa, fb)
}

func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// contains reports whether v, rendered as text, contains lowerTerm ignoring
// case. Empty values (nil, "", 0, false, zero time) never match.
func contains(v any, lowerTerm string) bool {
	if empty(v) {
		return false
	}
	return strings.Contains(strings.ToLower(text(v)), lowerTerm)
}

func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	}
	if f, ok := number(v); ok {
		return f == 0
	}
	return false
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
