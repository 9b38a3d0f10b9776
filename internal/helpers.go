package internal

import (
	"reflect"
	"strconv"
)

// paramSource is satisfied by Context and Route.
type paramSource interface {
	Param(name string) string
}

// ContextValue returns the request-scoped value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns the URL parameter name converted to T.
// Returns the zero T when the parameter is missing or malformed.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](src paramSource, name string) T {
	v, _ := convertParam[T](src.Param(name))
	return v
}

// ParamDefault is like Param but returns def when conversion fails.
func ParamDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](src paramSource, name string, def T) T {
	raw := src.Param(name)
	if raw == "" {
		return def
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return def
	}
	return v
}

// convertParam parses raw by the kind of T, so named types such as
// `type Slug string` convert like their underlying type.
func convertParam[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var v T
	rv := reflect.ValueOf(&v).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return v, false
		}
		rv.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, false
		}
		rv.SetBool(b)
	default:
		return v, false
	}
	return v, true
}
