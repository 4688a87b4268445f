package step

import (
	"context"
	"time"
)

// Algorithm provides a uniform constructor for a family of Computations
// sharing a ComputationStep.
type Algorithm[Ctx any, State any, Output any] interface {
	Configure(cctx Ctx, initial State) *Computation[Ctx, State, Output]
}

// GenAlgorithm provides a uniform constructor for a family of Generators
// sharing a GeneratorStep.
type GenAlgorithm[Ctx any, State any, Output any] interface {
	Configure(cctx Ctx, initial State) *Generator[Ctx, State, Output]
}

// identityStep is a ComputationStep whose Step immediately terminates and
// whose Output returns the state unchanged. Used where a pipeline stage
// is optional (e.g. TrimSetting == None).
type identityStep[State any] struct{}

func (identityStep[State]) Step(_ context.Context, _ struct{}, _ *State) Completable[struct{}] {
	return Ready(struct{}{})
}

func (identityStep[State]) Output(_ context.Context, _ struct{}, state State) State {
	return state
}

// Identity returns the distinguished identity Computation over State: it
// terminates immediately and outputs the initial state unchanged.
func Identity[State any](initial State) *Computation[struct{}, State, State] {
	return NewComputation[struct{}, State, State](identityStep[State]{}, struct{}{}, initial)
}

// Runnable is satisfied by *Computation[Ctx, State, Output] and anything
// else exposing a blocking Compute method, for use with RunWithTimeout.
type Runnable[T any] interface {
	Compute(ctx context.Context) Completable[T]
}

// RunWithTimeout installs a context.WithTimeout cancellation, drives r to
// completion, and converts the result into the standard Go error idiom:
// nil error on success, *CancelledError on cancellation (including
// timeout expiry). Timeout is the only deadline mechanism CPU-bound work
// in this module supports — there is no soft-cancel.
func RunWithTimeout[T any](parent context.Context, timeout time.Duration, r Runnable[T]) (T, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	res := r.Compute(ctx)
	if res.IsCancelled() {
		var zero T
		return zero, &CancelledError{Reason: res.Reason()}
	}
	return res.Value(), nil
}

// CheckContext converts a tripped context into a Cancelled result tagged
// "context"; the SCC and attractor generator steps call it at the start
// of each step. The reachability and trimming operators perform the same
// check inline between variable iterations (§5).
func CheckContext[T any](ctx context.Context) (Completable[T], bool) {
	select {
	case <-ctx.Done():
		return Cancelled[T]("context"), true
	default:
		return Completable[T]{}, false
	}
}
