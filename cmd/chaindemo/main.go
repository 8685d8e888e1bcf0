package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/chainrt/chain"
	"github.com/tailored-agentic-units/chainrt/config"
	"github.com/tailored-agentic-units/chainrt/observability"
)

func main() {
	var (
		stages  = flag.Int("stages", 3, "Number of identity stages in the demo chain")
		fanIn   = flag.Int("fan-in", 0, "Number of parallel branches after the chain; 0 to skip")
		verbose = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	messages := flag.Args()
	if len(messages) == 0 {
		messages = []string{"hello", "world"}
	}

	if *stages < 1 {
		fmt.Fprintln(os.Stderr, "Usage: chaindemo [-stages N] [-fan-in N] [msg ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observability.RegisterObserver("demo", observability.NewSlogObserver(logger))

	topology := buildDemoTopology(*stages, *fanIn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.DefaultPipelineConfig()
	cfg.Observer = "demo"

	pipe, err := chain.Create(ctx, topology, cfg)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}

	if len(pipe.Entries()) == 0 {
		log.Fatal("pipeline construction failed before any worker started")
	}

	for _, msg := range messages {
		pipe.Feed(msg)
	}
	pipe.Close()

	for {
		msg, done, err := pipe.Next(ctx)
		if err != nil {
			log.Fatalf("pipeline failed: %v", err)
		}
		if done {
			fmt.Println("chain_end")
			return
		}
		fmt.Printf("-> %v\n", msg)
	}
}

func buildDemoTopology(stages, fanIn int) chain.Topology {
	children := make([]chain.Topology, 0, stages)
	for i := 0; i < stages; i++ {
		children = append(children, chain.Element(identityWorker, nil))
	}
	if fanIn > 0 {
		branches := make([]chain.Topology, 0, fanIn)
		for i := 0; i < fanIn; i++ {
			branches = append(branches, chain.Element(identityWorker, nil))
		}
		children = append(children, chain.FanIn(branches...))
	}
	return chain.Chain(children...)
}

func identityWorker(ctx context.Context, w *chain.Worker) error {
	for {
		msg, err := w.Get(ctx)
		if err != nil {
			if errors.Is(err, chain.ErrMailboxClosed) {
				return nil
			}
			return err
		}
		w.Send(msg)
	}
}
