package step

import (
	"context"

	"gopkg.in/yaml.v3"
)

// ComputationStep is a stateless operator producing a single output. When
// Step returns Ready(struct{}{}), state is semantically terminal and
// Output finalises it into the result. Output must not perform heavy work
// — everything CPU-bound belongs in Step, since Output is not cancellable.
type ComputationStep[Ctx any, State any, Output any] interface {
	Step(ctx context.Context, cctx Ctx, state *State) Completable[struct{}]
	Output(ctx context.Context, cctx Ctx, state State) Output
}

// Computation wraps a ComputationStep with its owned context and state,
// caching the result once the state reaches termination.
type Computation[Ctx any, State any, Output any] struct {
	cctx   Ctx
	step   ComputationStep[Ctx, State, Output]
	state  *State
	result *Output
}

// NewComputation configures a fresh Computation from an initial state.
func NewComputation[Ctx any, State any, Output any](s ComputationStep[Ctx, State, Output], cctx Ctx, initial State) *Computation[Ctx, State, Output] {
	st := initial
	return &Computation[Ctx, State, Output]{cctx: cctx, step: s, state: &st}
}

// TryCompute drives one step. Once the underlying state reaches
// termination it finalises and caches the result; subsequent calls return
// the cached Ready value without re-running Step.
func (c *Computation[Ctx, State, Output]) TryCompute(ctx context.Context) Completable[Output] {
	if c.result != nil {
		return Ready(*c.result)
	}
	r := c.step.Step(ctx, c.cctx, c.state)
	switch {
	case r.IsCancelled():
		return Cancelled[Output](r.Reason())
	case r.IsWorking():
		return Working[Output]()
	default:
		out := c.step.Output(ctx, c.cctx, *c.state)
		c.result = &out
		c.state = nil
		return Ready(out)
	}
}

// Compute loops over TryCompute until it reaches Ready or Cancelled.
func (c *Computation[Ctx, State, Output]) Compute(ctx context.Context) Completable[Output] {
	for {
		r := c.TryCompute(ctx)
		if !r.IsWorking() {
			return r
		}
		select {
		case <-ctx.Done():
			return Cancelled[Output]("context")
		default:
		}
	}
}

// Run is a one-shot convenience: configure and drive a Computation to
// completion.
func Run[Ctx any, State any, Output any](ctx context.Context, s ComputationStep[Ctx, State, Output], cctx Ctx, initial State) Completable[Output] {
	return NewComputation(s, cctx, initial).Compute(ctx)
}

// Snapshot serialises the Computation's live state to bytes. It returns
// ErrAlreadyFinalized if the computation has already produced its result
// (there is nothing left to resume).
func (c *Computation[Ctx, State, Output]) Snapshot() ([]byte, error) {
	if c.state == nil {
		return nil, ErrAlreadyFinalized
	}
	return yaml.Marshal(*c.state)
}

// RestoreComputation reconstructs a Computation from bytes produced by
// Snapshot. The caller supplies a fresh Ctx (graph/config are not
// serialised — only the pure-value algorithm state is).
func RestoreComputation[Ctx any, State any, Output any](s ComputationStep[Ctx, State, Output], cctx Ctx, data []byte) (*Computation[Ctx, State, Output], error) {
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &Computation[Ctx, State, Output]{cctx: cctx, step: s, state: &st}, nil
}

// DynComputable is the dynamic-dispatch form of a Computation's driver
// method, for code that selects a sub-algorithm at runtime and drives it
// through the interface. *Computation[Ctx, State,
// Output] always satisfies this for its own Output type.
type DynComputable[Output any] interface {
	TryCompute(ctx context.Context) Completable[Output]
}
