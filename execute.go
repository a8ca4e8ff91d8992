package adaptor

import (
	"context"
	"maps"

	"github.com/aretw0/adaptor/pkg/common"
	"github.com/aretw0/adaptor/pkg/domain"
)

// Execute returns an operation that runs ops in order over the caller's
// state, seeded with empty references and null data.
//
// Keys the caller sets win over the seed. Errors from any operation stop
// the sequence and are returned unchanged.
func Execute(ops ...Operation) Operation {
	run := common.Execute(ops...)
	return func(ctx context.Context, s *State) (*State, error) {
		return run(ctx, seed(s))
	}
}

// seed merges s over the initial state shape.
func seed(s *State) *State {
	out := domain.NewState()
	if s == nil {
		return out
	}

	out.Configuration = s.Configuration
	out.Data = s.Data
	out.Response = s.Response
	if s.References != nil {
		out.References = s.References
	}
	if len(s.Extras) > 0 {
		out.Extras = maps.Clone(s.Extras)
	}
	return out
}
