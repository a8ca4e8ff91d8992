package job

import (
	"fmt"

	"github.com/aretw0/adaptor/pkg/common"
)

// Placeholder keys. A map holding exactly one of these keys with a string
// value is replaced by the matching resolver.
const (
	KeyRef  = "$ref"
	KeyData = "$data"
	KeyLast = "$last"
)

var placeholderKinds = map[string]func(string) common.Resolver{
	KeyRef:  common.SourceValue,
	KeyData: common.DataValue,
	KeyLast: common.LastReferenceValue,
}

// convertPlaceholders returns a copy of v with placeholder maps replaced by
// resolvers.
func convertPlaceholders(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			for k, arg := range t {
				build, ok := placeholderKinds[k]
				if !ok {
					break
				}
				path, ok := arg.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %s expects a path string, got %T", ErrInvalidJob, k, arg)
				}
				return build(path), nil
			}
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			converted, err := convertPlaceholders(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			converted, err := convertPlaceholders(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}
