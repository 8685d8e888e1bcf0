package chain

import (
	"context"
	"sync"

	"github.com/tailored-agentic-units/chainrt/config"
	"github.com/tailored-agentic-units/chainrt/observability"
)

// Pipeline is a running worker graph: a set of entry points to feed messages into,
// and a single terminal output stream to drain with Next.
type Pipeline struct {
	entries []*Handle
	agg     *Handle
	out     <-chan Envelope

	mu       sync.Mutex
	finished bool
	finalErr error
}

// Create builds and starts the worker graph t describes. Chain stages start
// right-to-left (FanIn children in declaration order), so every successor is already
// running by the time its predecessor links to it. Construction only fails outright
// if t itself is malformed (an empty Chain or FanIn); a worker that cannot start
// mid-build instead yields a Pipeline whose Entries is empty, matching how a real
// crash partway through supervision start-up would leave things.
func Create(ctx context.Context, t Topology, cfg config.PipelineConfig) (*Pipeline, error) {
	n, err := CountOut(t)
	if err != nil {
		return nil, err
	}

	obs, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		obs = observability.NoOpObserver{}
	}
	oc := &observerContext{ctx: ctx, obs: obs}
	oc.buildStart(n)

	agg, out := newAggregator(ctx, n, oc)
	entries := build(ctx, t, []*Handle{agg}, oc)

	oc.buildComplete(len(entries))

	return &Pipeline{entries: entries, agg: agg, out: out}, nil
}

// Entries returns the handles of this pipeline's topmost workers, the ones Feed
// delivers to. It is empty if any worker failed to start during construction because
// a successor had already terminated before it could link.
func (p *Pipeline) Entries() []*Handle {
	return p.entries
}

// Feed delivers msg to every entry point.
func (p *Pipeline) Feed(msg any) {
	for _, h := range p.entries {
		h.deliver(msg)
	}
}

// Close signals every entry point that nothing more will ever be fed to it. An entry
// worker written as a Get loop observes ErrMailboxClosed and can terminate normally,
// letting the aggregator reach end-of-stream once every terminal branch has followed
// it down.
func (p *Pipeline) Close() {
	for _, h := range p.entries {
		h.Close()
	}
}

// Next blocks until the pipeline forwards a payload, reaches end-of-stream, or fails,
// whichever happens first. Once a terminal outcome has been observed (done == true),
// every subsequent call returns that same outcome again rather than blocking.
func (p *Pipeline) Next(ctx context.Context) (msg any, done bool, err error) {
	p.mu.Lock()
	if p.finished {
		finalErr := p.finalErr
		p.mu.Unlock()
		return nil, true, finalErr
	}
	p.mu.Unlock()

	select {
	case env, ok := <-p.out:
		if !ok {
			p.mu.Lock()
			p.finished = true
			p.finalErr = p.agg.Reason()
			finalErr := p.finalErr
			p.mu.Unlock()
			return nil, true, finalErr
		}
		return env.Payload, false, nil

	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
