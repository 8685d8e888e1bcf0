package chain

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/chainrt/chain/internal/mailbox"
)

// Envelope is the wire wrapper delivered through a worker's mailbox. exit is non-nil
// only for handles that trap exits; it carries a linked peer's termination reason
// rather than a payload, routed through the same mailbox as ordinary Sends so that a
// predecessor's final message is always observed before its exit signal.
type Envelope struct {
	Payload any

	exit *exitSignal
}

type exitSignal struct {
	reason error // nil means the peer terminated normally
}

// Handle is an opaque reference to a running worker: it can be sent messages and be
// observed for liveness and termination reason, but exposes nothing about the
// worker's own function.
type Handle struct {
	id   string
	mbox *mailbox.Mailbox[Envelope]

	mu       sync.RWMutex
	done     chan struct{}
	reason   error
	finished bool

	traps  bool
	cancel context.CancelCauseFunc // set for non-trapping worker handles only
	linked int                     // predecessors linked via link that have not exited normally
}

func newHandle(traps bool) *Handle {
	return &Handle{
		id:    uuid.Must(uuid.NewV7()).String(),
		mbox:  mailbox.New[Envelope](),
		done:  make(chan struct{}),
		traps: traps,
	}
}

// ID returns the handle's opaque identifier.
func (h *Handle) ID() string { return h.id }

// Alive reports whether the worker has not yet terminated.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Reason returns the worker's termination reason. Only meaningful once Alive reports
// false; nil means the worker terminated normally.
func (h *Handle) Reason() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reason
}

func (h *Handle) deliver(msg any) {
	h.mbox.Send(Envelope{Payload: msg})
}

// terminate marks h terminated with reason. Safe to call more than once or
// concurrently; only the first call has any effect.
func (h *Handle) terminate(reason error) {
	h.mu.Lock()
	if h.finished {
		h.mu.Unlock()
		return
	}
	h.finished = true
	h.reason = reason
	h.mu.Unlock()

	h.mbox.Close()
	close(h.done)
}

// Kill forcibly terminates the worker this handle addresses with reason, as if the
// worker's own function had returned that error, cascading to every linked peer the
// same way a real abnormal exit would. reason must be non-nil.
func (h *Handle) Kill(reason error) {
	if reason == nil {
		reason = errors.New("chain: killed with nil reason")
	}
	if h.cancel != nil {
		h.cancel(reason)
		return
	}
	h.terminate(reason)
}

// Close signals that nothing more will ever be sent to this handle. A worker blocked
// in Get sees its mailbox drain and then observes ErrMailboxClosed.
func (h *Handle) Close() {
	h.mbox.Close()
}

// receiveExit is invoked by link when a linked peer terminates. A trapping handle
// queues the signal on its own mailbox for its processing loop to observe in order; a
// non-trapping handle cascades by cancelling its own context on an abnormal reason and
// otherwise ignores a normal one.
func (h *Handle) receiveExit(sig exitSignal) {
	if h.traps {
		h.mbox.Send(Envelope{exit: &sig})
		return
	}
	if sig.reason != nil && h.cancel != nil {
		h.cancel(sig.reason)
	}
}

// link establishes a bidirectional exit relationship between a (the predecessor) and
// b (its successor): whichever terminates first delivers its reason to the other as an
// exit signal. Once every predecessor linked to a non-trapping b has exited normally,
// b's mailbox is closed, so a Get loop in b drains it and then sees ErrMailboxClosed.
func link(a, b *Handle) {
	b.mu.Lock()
	b.linked++
	b.mu.Unlock()
	go func() {
		select {
		case <-a.done:
			reason := a.Reason()
			b.receiveExit(exitSignal{reason: reason})
			if reason == nil && !b.traps {
				b.mu.Lock()
				b.linked--
				last := b.linked == 0
				b.mu.Unlock()
				if last {
					b.Close()
				}
			}
		case <-b.done:
			a.receiveExit(exitSignal{reason: b.Reason()})
		}
	}()
}
