package common

import (
	"context"
	"fmt"

	"github.com/aretw0/adaptor/pkg/domain"
)

// Execute composes ops into a single operation that runs them strictly in
// order, each receiving the state returned by its predecessor.
//
// The first failing operation stops the sequence and its error is returned
// unchanged. Cancellation of ctx is observed between operations.
// With no operations the input state is returned as is.
func Execute(ops ...domain.Operation) domain.Operation {
	return func(ctx context.Context, s *domain.State) (*domain.State, error) {
		state := s
		for i, op := range ops {
			if op == nil {
				return nil, fmt.Errorf("%w at position %d", ErrNilOperation, i)
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next, err := op(ctx, state)
			if err != nil {
				return nil, err
			}
			state = next
		}
		return state, nil
	}
}
