package adaptor

import (
	"context"

	"github.com/aretw0/adaptor/pkg/common"
	"github.com/aretw0/adaptor/pkg/domain"
)

// Domain types, re-exported so callers can stay on the root package.
type (
	State         = domain.State
	Configuration = domain.Configuration
	Response      = domain.Response
	Operation     = domain.Operation
	Callback      = domain.Callback
	Resolver      = common.Resolver
	ResolverFunc  = common.ResolverFunc
	KeyValue      = common.KeyValue
)

// NewState returns the empty seed state.
func NewState() *State { return domain.NewState() }

// AlterState wraps fn as an operation working on a private copy of the state.
func AlterState(fn func(ctx context.Context, s *State) (*State, error)) Operation {
	return common.AlterState(fn)
}

// DataPath prefixes path with "$.data".
func DataPath(path string) string { return common.DataPath(path) }

// DataValue resolves path relative to the state's data.
func DataValue(path string) Resolver { return common.DataValue(path) }

// Each runs op once per item matched by path.
func Each(path string, op Operation) Operation { return common.Each(path, op) }

// Field pairs key with value.
func Field(key string, value any) KeyValue { return common.Field(key, value) }

// Fields collects pairs into a map.
func Fields(fields ...KeyValue) map[string]any { return common.Fields(fields...) }

// LastReferenceValue resolves path against the most recent reference.
func LastReferenceValue(path string) Resolver { return common.LastReferenceValue(path) }

// Merge resolves to the items at path, each overlaid with fields.
func Merge(path string, fields map[string]any) Resolver { return common.Merge(path, fields) }

// SourceValue resolves path against the whole state.
func SourceValue(path string) Resolver { return common.SourceValue(path) }

// Value wraps a concrete value as a Resolver.
func Value(v any) Resolver { return common.Value(v) }

// Expand resolves every placeholder in v against s.
func Expand(v any, s *State) (any, error) { return common.Expand(v, s) }

// ComposeNextState returns a state with data set and the previous data
// pushed onto references.
func ComposeNextState(s *State, data any) *State { return common.ComposeNextState(s, data) }
