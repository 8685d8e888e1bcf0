package mailbox_test

import (
	"testing"
	"time"

	"github.com/tailored-agentic-units/chainrt/chain/internal/mailbox"
)

func TestMailbox_FIFO(t *testing.T) {
	m := mailbox.New[int]()

	for i := 0; i < 5; i++ {
		m.Send(i)
	}

	for i := 0; i < 5; i++ {
		select {
		case v := <-m.Chan():
			if v != i {
				t.Fatalf("got %d, want %d", v, i)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for value")
		}
	}
}

func TestMailbox_SendNeverBlocks(t *testing.T) {
	m := mailbox.New[int]()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			m.Send(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked with no consumer draining Chan")
	}
}

func TestMailbox_CloseDrainsQueued(t *testing.T) {
	m := mailbox.New[string]()
	m.Send("a")
	m.Send("b")
	m.Close()

	got := make([]string, 0, 2)
	for v := range m.Chan() {
		got = append(got, v)
	}

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestMailbox_CloseIdempotent(t *testing.T) {
	m := mailbox.New[int]()
	m.Close()
	m.Close()
}
