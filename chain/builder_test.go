package chain

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errCrash = errors.New("crash")

func waitDead(t *testing.T, h *Handle) {
	t.Helper()
	deadline := time.After(time.Second)
	for h.Alive() {
		select {
		case <-deadline:
			t.Fatalf("handle %s never terminated", h.ID())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestStartWorker_LinksToLiveSuccessor(t *testing.T) {
	sink := newHandle(true)
	defer sink.terminate(nil)

	fn := func(ctx context.Context, w *Worker) error { return nil }
	h := startWorker(context.Background(), fn, nil, []*Handle{sink}, nil)
	if h == nil {
		t.Fatal("startWorker returned nil for a live successor")
	}
	waitDead(t, h)
	if h.Reason() != nil {
		t.Errorf("Reason() = %v, want nil (normal exit)", h.Reason())
	}
}

func TestStartWorker_RefusesDeadSuccessor(t *testing.T) {
	sink := newHandle(true)
	sink.terminate(nil)

	fn := func(ctx context.Context, w *Worker) error { return nil }
	h := startWorker(context.Background(), fn, nil, []*Handle{sink}, nil)
	if h != nil {
		t.Fatal("startWorker started a worker against an already-dead successor")
	}
}

func TestStartWorker_PanicBecomesAbnormalExit(t *testing.T) {
	sink := newHandle(true)
	defer sink.terminate(nil)

	fn := func(ctx context.Context, w *Worker) error { panic("oh no") }
	h := startWorker(context.Background(), fn, nil, []*Handle{sink}, nil)
	if h == nil {
		t.Fatal("startWorker returned nil")
	}
	waitDead(t, h)
	if !errors.Is(h.Reason(), ErrWorkerPanic) {
		t.Errorf("Reason() = %v, want ErrWorkerPanic", h.Reason())
	}
}

func TestStartWorker_AbnormalExitCascadesToSuccessor(t *testing.T) {
	blockForever := func(ctx context.Context, w *Worker) error {
		_, err := w.Get(ctx)
		return err
	}
	sink := startWorker(context.Background(), blockForever, nil, nil, nil)
	if sink == nil {
		t.Fatal("startWorker returned nil for sink")
	}

	fn := func(ctx context.Context, w *Worker) error { return errCrash }
	h := startWorker(context.Background(), fn, nil, []*Handle{sink}, nil)
	if h == nil {
		t.Fatal("startWorker returned nil")
	}

	waitDead(t, h)
	waitDead(t, sink)
	if !errors.Is(sink.Reason(), errCrash) {
		t.Errorf("sink.Reason() = %v, want errCrash", sink.Reason())
	}
}

func TestBuild_ChainLinksRightToLeft(t *testing.T) {
	sink := newHandle(true)
	defer sink.terminate(nil)

	relay := func(ctx context.Context, w *Worker) error {
		msg, err := w.Get(ctx)
		if err != nil {
			return nil
		}
		w.Send(msg)
		_, _ = w.Get(ctx)
		return nil
	}

	topo := Chain(Element(relay, nil), Element(relay, nil))
	heads := build(context.Background(), topo, []*Handle{sink}, nil)
	if len(heads) != 1 {
		t.Fatalf("build returned %d heads, want 1", len(heads))
	}

	heads[0].deliver("hello")

	select {
	case env := <-sink.mbox.Chan():
		if env.Payload != "hello" {
			t.Errorf("sink received %v, want hello", env.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("sink never received the relayed message")
	}

	heads[0].Close()
}

func TestBuild_FanInStartsEveryChild(t *testing.T) {
	sink := newHandle(true)
	defer sink.terminate(nil)

	fn := func(ctx context.Context, w *Worker) error { return nil }
	topo := FanIn(Element(fn, nil), Element(fn, nil), Element(fn, nil))

	heads := build(context.Background(), topo, []*Handle{sink}, nil)
	if len(heads) != 3 {
		t.Fatalf("build returned %d heads, want 3", len(heads))
	}
}
