package chain

import (
	"context"
	"fmt"
)

// startWorker runs the starter protocol for a single element: verify every successor
// is still alive, link to each of them, then hand the worker off to fn. It returns
// nil without starting anything if a successor had already died, which happens when
// an earlier FanIn sibling's body crashed and cascade-killed shared successors before
// this starter had a chance to link to them.
func startWorker(parent context.Context, fn WorkerFunc, opts Options, successors []*Handle, obs *observerContext) *Handle {
	for _, p := range successors {
		if !p.Alive() {
			return nil
		}
	}

	ctx, cancel := context.WithCancelCause(parent)
	h := newHandle(false)
	h.cancel = cancel

	for _, p := range successors {
		link(h, p)
	}

	w := &Worker{handle: h, ctx: ctx, opts: withNext(successors, opts)}

	obs.workerStart(h)

	go func() {
		reason := runWorkerFunc(ctx, fn, w)
		obs.workerExit(h, reason)
		cancel(reason)
		h.terminate(reason)
	}()

	return h
}

// runWorkerFunc runs fn to completion, converting a recovered panic into an
// ErrWorkerPanic-wrapped abnormal reason. A fn that returns nil after its own context
// was cancelled by a cascading peer is still treated as abnormal, using the
// cancellation cause as the reason, in case fn ignored the error Get returned it.
func runWorkerFunc(ctx context.Context, fn WorkerFunc, w *Worker) (reason error) {
	defer func() {
		if r := recover(); r != nil {
			reason = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()

	if err := fn(ctx, w); err != nil {
		return err
	}
	if cause := context.Cause(ctx); cause != nil && cause != context.Canceled {
		return cause
	}
	return nil
}

// build recursively starts every worker t describes, wiring each one's successors to
// successors (for an elementTopology or the terminal stage of a chainTopology) or to
// the next stage's handles (for an interior chainTopology stage). It returns the
// handles of t's own entry workers (the ones the level above must feed), or nil if
// any worker failed to start.
func build(ctx context.Context, t Topology, successors []*Handle, obs *observerContext) []*Handle {
	switch v := t.(type) {
	case elementTopology:
		h := startWorker(ctx, v.fn, v.opts, successors, obs)
		if h == nil {
			return nil
		}
		return []*Handle{h}

	case fanInTopology:
		all := make([]*Handle, 0, len(v.children))
		for _, c := range v.children {
			hs := build(ctx, c, successors, obs)
			if hs == nil {
				return nil
			}
			all = append(all, hs...)
		}
		return all

	case chainTopology:
		cur := successors
		for i := len(v.children) - 1; i >= 0; i-- {
			hs := build(ctx, v.children[i], cur, obs)
			if hs == nil {
				return nil
			}
			cur = hs
		}
		return cur

	default:
		return nil
	}
}
