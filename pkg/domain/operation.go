package domain

import "context"

// Operation is one step of a sequence: it receives the current state and
// returns the next one. It must not mutate its input.
type Operation func(ctx context.Context, s *State) (*State, error)

// Callback post-processes the state computed by an operation builder.
// Its result replaces the computed state.
type Callback func(ctx context.Context, s *State) (*State, error)

// Finalize applies cb to next when cb is set, otherwise returns next as is.
func Finalize(ctx context.Context, next *State, cb Callback) (*State, error) {
	if cb == nil {
		return next, nil
	}
	return cb(ctx, next)
}
