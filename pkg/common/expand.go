package common

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/aretw0/adaptor/pkg/domain"
)

// Resolver is a deferred value, resolved against the state present when an
// operation runs rather than when it was built.
type Resolver interface {
	Resolve(s *domain.State) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(s *domain.State) (any, error)

// Resolve calls f(s).
func (f ResolverFunc) Resolve(s *domain.State) (any, error) {
	return f(s)
}

type concrete struct {
	v any
}

func (c concrete) Resolve(*domain.State) (any, error) {
	return c.v, nil
}

// Value wraps a concrete value so it can stand wherever a Resolver is
// expected.
func Value(v any) Resolver {
	return concrete{v: v}
}

var resolverType = reflect.TypeOf((*Resolver)(nil)).Elem()

// Expand resolves every Resolver found in v, descending into maps and
// slices, including typed ones such as map[string]Resolver. The descriptor v is never modified; containers holding
// placeholders are copied. Resolved values are returned as produced and are
// not expanded again.
func Expand(v any, s *domain.State) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Resolver:
		return t.Resolve(s)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			resolved, err := Expand(item, s)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			resolved, err := Expand(item, s)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			resolved, err := Expand(item, s)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case []KeyValue:
		return Expand(Fields(t...), s)
	default:
		return expandTyped(reflect.ValueOf(v), s)
	}
}

// expandTyped walks string-keyed maps, slices and arrays whose elements can
// hold a Resolver. Anything else is returned as is.
func expandTyped(rv reflect.Value, s *domain.State) (any, error) {
	v := rv.Interface()
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || !mayHoldResolver(rv.Type().Elem()) {
			return v, nil
		}
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			resolved, err := Expand(iter.Value().Interface(), s)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = resolved
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if !mayHoldResolver(rv.Type().Elem()) {
			return v, nil
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			resolved, err := Expand(rv.Index(i).Interface(), s)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func mayHoldResolver(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Map, reflect.Slice, reflect.Array:
		return t.Implements(resolverType) || mayHoldResolver(t.Elem())
	default:
		return t.Implements(resolverType)
	}
}

// ExpandString expands v into a string. Scalars are formatted, so an id
// decoded from JSON as 7.0 renders as "7". Maps, slices and structs are
// rejected with an *ExpansionError.
func ExpandString(v any, s *domain.State) (string, error) {
	resolved, err := Expand(v, s)
	if err != nil {
		return "", err
	}
	switch t := resolved.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case bool:
		return strconv.FormatBool(t), nil
	case json.Number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	switch reflect.ValueOf(resolved).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return fmt.Sprint(resolved), nil
	default:
		return "", &ExpansionError{Want: "string", Got: resolved}
	}
}
