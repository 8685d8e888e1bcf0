package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tailored-agentic-units/chainrt/chain"
)

func noopFn(ctx context.Context, w *chain.Worker) error { return nil }

func TestCountOut_Element(t *testing.T) {
	n, err := chain.CountOut(chain.Element(noopFn, nil))
	if err != nil {
		t.Fatalf("CountOut returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountOut = %d, want 1", n)
	}
}

func TestCountOut_Chain(t *testing.T) {
	n, err := chain.CountOut(chain.Chain(
		chain.Element(noopFn, nil),
		chain.Element(noopFn, nil),
		chain.Element(noopFn, nil),
	))
	if err != nil {
		t.Fatalf("CountOut returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountOut = %d, want 1 (a chain's out count is its last stage's)", n)
	}
}

func TestCountOut_FanIn(t *testing.T) {
	n, err := chain.CountOut(chain.FanIn(
		chain.Element(noopFn, nil),
		chain.Element(noopFn, nil),
	))
	if err != nil {
		t.Fatalf("CountOut returned error: %v", err)
	}
	if n != 2 {
		t.Errorf("CountOut = %d, want 2", n)
	}
}

func TestCountOut_ChainEndingInFanIn(t *testing.T) {
	n, err := chain.CountOut(chain.Chain(
		chain.Element(noopFn, nil),
		chain.FanIn(
			chain.Element(noopFn, nil),
			chain.Element(noopFn, nil),
			chain.Element(noopFn, nil),
		),
	))
	if err != nil {
		t.Fatalf("CountOut returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("CountOut = %d, want 3", n)
	}
}

func TestCountOut_EmptyChain(t *testing.T) {
	_, err := chain.CountOut(chain.Chain())
	if !errors.Is(err, chain.ErrEmptyChain) {
		t.Errorf("err = %v, want ErrEmptyChain", err)
	}
}

func TestCountOut_EmptyFanIn(t *testing.T) {
	_, err := chain.CountOut(chain.FanIn())
	if !errors.Is(err, chain.ErrEmptyFanIn) {
		t.Errorf("err = %v, want ErrEmptyFanIn", err)
	}
}
