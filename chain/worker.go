package chain

import "context"

// WorkerFunc is the body a topology element runs. It receives a context that is
// cancelled with cause when a linked peer cascades an abnormal exit, and a Worker for
// receiving and sending messages. A non-nil return is an abnormal exit that cascades
// to every linked peer; a nil return (including one following a graceful
// ErrMailboxClosed from Get) is normal.
type WorkerFunc func(ctx context.Context, w *Worker) error

// Worker is the interface a running WorkerFunc uses to exchange messages with the rest
// of the pipeline. It is only valid for the duration of the function call it was
// passed to.
type Worker struct {
	handle *Handle
	ctx    context.Context
	opts   Options
}

// Handle returns this worker's own handle.
func (w *Worker) Handle() *Handle { return w.handle }

// Options returns the options bag this worker was started with, including the
// builder-supplied NextTag successor list.
func (w *Worker) Options() Options { return w.opts }

// Get blocks until a message arrives, the worker's own lifecycle ends, or ctx is
// done, whichever happens first. ErrMailboxClosed means the worker's mailbox has
// drained after being closed and nothing more will ever arrive. When ctx is done, the
// returned error is its cancellation cause (for the context passed to the WorkerFunc,
// the reason of the cascading peer or of Kill).
func (w *Worker) Get(ctx context.Context) (any, error) {
	select {
	case env, ok := <-w.handle.mbox.Chan():
		if !ok {
			return nil, ErrMailboxClosed
		}
		return env.Payload, nil
	case <-w.ctx.Done():
		return nil, context.Cause(w.ctx)
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// Send delivers msg to every handle bound under NextTag: the worker's successors.
func (w *Worker) Send(msg any) {
	w.SendTo(NextTag, msg)
}

// SendTo delivers msg to every live *Handle bound under tag. Handles that have
// already terminated are silently skipped.
func (w *Worker) SendTo(tag string, msg any) {
	for _, v := range w.opts.Lookup(tag) {
		for _, h := range asHandles(v) {
			if h != nil && h.Alive() {
				h.deliver(msg)
			}
		}
	}
}
