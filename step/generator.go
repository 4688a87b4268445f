package step

import (
	"context"

	"gopkg.in/yaml.v3"
)

// GeneratorStep is a stateless operator producing a lazy sequence.
// Step returns Ready(non-nil) to emit an item, Ready(nil) to signal the
// sequence is exhausted, Working to report progress without an item, or
// Cancelled to abort.
type GeneratorStep[Ctx any, State any, Output any] interface {
	Step(ctx context.Context, cctx Ctx, state *State) Completable[*Output]
}

// Generator wraps a GeneratorStep with its owned context and state.
type Generator[Ctx any, State any, Output any] struct {
	cctx Ctx
	step GeneratorStep[Ctx, State, Output]
	st   *State
	done bool
}

// NewGenerator configures a fresh Generator from an initial state.
func NewGenerator[Ctx any, State any, Output any](s GeneratorStep[Ctx, State, Output], cctx Ctx, initial State) *Generator[Ctx, State, Output] {
	st := initial
	return &Generator[Ctx, State, Output]{cctx: cctx, step: s, st: &st}
}

// TryNext drives one step: Ready(item) emits, Ready(nil) signals
// exhaustion, Working means call again, Cancelled aborts.
func (g *Generator[Ctx, State, Output]) TryNext(ctx context.Context) Completable[*Output] {
	if g.done {
		return Ready[*Output](nil)
	}
	r := g.step.Step(ctx, g.cctx, g.st)
	switch {
	case r.IsCancelled():
		return Cancelled[*Output](r.Reason())
	case r.IsWorking():
		return Working[*Output]()
	default:
		v := r.Value()
		if v == nil {
			g.done = true
			g.st = nil
		}
		return Ready(v)
	}
}

// Next is the blocking iterator adapter: it loops over Working internally
// and returns either the next item (ok == true), exhaustion (ok == false,
// err == nil), or a cancellation error.
func (g *Generator[Ctx, State, Output]) Next(ctx context.Context) (out Output, ok bool, err error) {
	for {
		r := g.TryNext(ctx)
		switch {
		case r.IsCancelled():
			return out, false, &CancelledError{Reason: r.Reason()}
		case r.IsWorking():
			select {
			case <-ctx.Done():
				return out, false, &CancelledError{Reason: "context"}
			default:
			}
			continue
		default:
			v := r.Value()
			if v == nil {
				return out, false, nil
			}
			return *v, true, nil
		}
	}
}

// Snapshot serialises the Generator's live state. ErrAlreadyFinalized if
// the sequence is already exhausted.
func (g *Generator[Ctx, State, Output]) Snapshot() ([]byte, error) {
	if g.st == nil {
		return nil, ErrAlreadyFinalized
	}
	return yaml.Marshal(*g.st)
}

// RestoreGenerator reconstructs a Generator from bytes produced by
// Snapshot, given a freshly supplied Ctx.
func RestoreGenerator[Ctx any, State any, Output any](s GeneratorStep[Ctx, State, Output], cctx Ctx, data []byte) (*Generator[Ctx, State, Output], error) {
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &Generator[Ctx, State, Output]{cctx: cctx, step: s, st: &st}, nil
}

// DynGenerator is the dynamic-dispatch form of a Generator's driver
// method.
type DynGenerator[Output any] interface {
	TryNext(ctx context.Context) Completable[*Output]
}

// Collector lifts a Generator into a Computation-shaped driver that
// accumulates every item into a slice, one item per TryCompute call — the
// "collect adapter" of the protocol.
type Collector[Ctx any, State any, Output any] struct {
	inner *Generator[Ctx, State, Output]
	items []Output
}

// NewCollector wraps a Generator for accumulation.
func NewCollector[Ctx any, State any, Output any](g *Generator[Ctx, State, Output]) *Collector[Ctx, State, Output] {
	return &Collector[Ctx, State, Output]{inner: g}
}

// TryCompute drives the inner generator by one step. Every emitted item is
// appended and reported as Working; exhaustion finalises with Ready of
// the accumulated slice.
func (c *Collector[Ctx, State, Output]) TryCompute(ctx context.Context) Completable[[]Output] {
	r := c.inner.TryNext(ctx)
	switch {
	case r.IsCancelled():
		return Cancelled[[]Output](r.Reason())
	case r.IsWorking():
		return Working[[]Output]()
	default:
		v := r.Value()
		if v == nil {
			return Ready(c.items)
		}
		c.items = append(c.items, *v)
		return Working[[]Output]()
	}
}

// Compute drives the Collector to completion.
func (c *Collector[Ctx, State, Output]) Compute(ctx context.Context) Completable[[]Output] {
	for {
		r := c.TryCompute(ctx)
		if !r.IsWorking() {
			return r
		}
		select {
		case <-ctx.Done():
			return Cancelled[[]Output]("context")
		default:
		}
	}
}
