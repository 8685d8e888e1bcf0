package chain

import "errors"

var (
	// ErrEmptyChain is returned by CountOut for a Chain topology with no children.
	ErrEmptyChain = errors.New("chain: empty chain topology")

	// ErrEmptyFanIn is returned by CountOut for a FanIn topology with no children.
	ErrEmptyFanIn = errors.New("chain: empty fan-in topology")

	// ErrMailboxClosed is returned by Worker.Get once its mailbox has drained and
	// closed, signaling the worker's predecessor will never send it anything more.
	ErrMailboxClosed = errors.New("chain: mailbox closed")

	// ErrWorkerPanic wraps a recovered panic value as a worker's abnormal exit reason.
	ErrWorkerPanic = errors.New("chain: worker panicked")
)
