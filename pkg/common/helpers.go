package common

import (
	"context"
	"maps"

	"github.com/aretw0/adaptor/pkg/domain"
)

// KeyIndex is the extra state key set by Each to the position of the
// current item.
const KeyIndex = "index"

// ComposeNextState returns a new state whose Data is data and whose
// References gain the previous Data at the front.
func ComposeNextState(s *domain.State, data any) *domain.State {
	next := s.Clone()
	if next == nil {
		next = domain.NewState()
	}

	refs := make([]any, 0, len(next.References)+1)
	if s != nil {
		refs = append(refs, s.Data)
	}
	refs = append(refs, next.References...)

	next.References = refs
	next.Data = data
	return next
}

// AlterState wraps fn as an operation. fn receives a private copy of the
// state and may modify it freely.
func AlterState(fn func(ctx context.Context, s *domain.State) (*domain.State, error)) domain.Operation {
	return func(ctx context.Context, s *domain.State) (*domain.State, error) {
		if s == nil {
			return nil, domain.ErrNilState
		}
		return fn(ctx, s.Clone())
	}
}

// Each runs op once for every match of path, in order. Each run sees Data
// set to the matched item and the "index" extra set to its position; the
// state returned by one run feeds the next.
func Each(path string, op domain.Operation) domain.Operation {
	return func(ctx context.Context, s *domain.State) (*domain.State, error) {
		items, err := queryState(s, path)
		if err != nil {
			return nil, err
		}

		state := s
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			in := state.Clone()
			in.Data = item
			if in.Extras == nil {
				in.Extras = make(map[string]any)
			}
			in.Extras[KeyIndex] = i

			out, err := op(ctx, in)
			if err != nil {
				return nil, err
			}
			state = out
		}
		return state, nil
	}
}

// KeyValue is a single named value built by Field.
type KeyValue struct {
	Key   string
	Value any
}

// Field pairs key with value. The value may be a Resolver.
func Field(key string, value any) KeyValue {
	return KeyValue{Key: key, Value: value}
}

// Fields collects pairs into a map. Later keys win.
func Fields(fields ...KeyValue) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// Merge resolves to the items matched by path, each overlaid with the
// expanded fields. Items that are not objects contribute no keys.
func Merge(path string, fields map[string]any) Resolver {
	return ResolverFunc(func(s *domain.State) (any, error) {
		items, err := queryState(s, path)
		if err != nil {
			return nil, err
		}
		expanded, err := Expand(fields, s)
		if err != nil {
			return nil, err
		}
		extra, _ := expanded.(map[string]any)

		out := make([]any, 0, len(items))
		for _, item := range items {
			merged := make(map[string]any)
			if obj, ok := item.(map[string]any); ok {
				maps.Copy(merged, obj)
			}
			maps.Copy(merged, extra)
			out = append(out, merged)
		}
		return out, nil
	})
}
