package chain

import "context"

// newAggregator creates the library-inserted trapping sink every topology's terminal
// branches link into. It forwards payloads verbatim to the returned channel, closing
// it once it has observed one normal exit signal per terminal branch (end-of-stream)
// or the first abnormal exit signal from any of them (pipeline failure). n == 0 means
// no terminal branch will ever link in; the aggregator then resolves to end-of-stream
// immediately rather than waiting forever. Create always passes CountOut's result,
// which is at least 1, so a construction failure there does not take this branch: the
// aggregator resolves from the exit signals of the terminal workers that did link.
func newAggregator(ctx context.Context, n int, obs *observerContext) (*Handle, <-chan Envelope) {
	h := newHandle(true)
	out := make(chan Envelope)

	go func() {
		defer close(out)

		if n == 0 {
			h.terminate(nil)
			obs.aggregatorComplete(h, nil)
			return
		}

		remaining := n
		for {
			select {
			case env, ok := <-h.mbox.Chan():
				if !ok {
					return
				}

				if env.exit != nil {
					if env.exit.reason != nil {
						h.terminate(env.exit.reason)
						obs.aggregatorComplete(h, env.exit.reason)
						return
					}
					remaining--
					if remaining == 0 {
						h.terminate(nil)
						obs.aggregatorComplete(h, nil)
						return
					}
					continue
				}

				select {
				case out <- env:
				case <-ctx.Done():
					h.terminate(ctx.Err())
					obs.aggregatorComplete(h, ctx.Err())
					return
				}

			case <-ctx.Done():
				h.terminate(ctx.Err())
				obs.aggregatorComplete(h, ctx.Err())
				return
			}
		}
	}()

	return h, out
}
