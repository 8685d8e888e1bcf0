// Package chain builds and supervises process pipelines: directed acyclic graphs of
// independently running workers that communicate by asynchronous message passing.
//
// A caller describes a topology declaratively with Element, FanIn, and Chain, hands it
// to Create, and gets back a Pipeline: a set of entry points to feed messages into, and
// a single output stream to drain. Workers run concurrently as goroutines; the failure
// of any one of them collapses the whole pipeline and surfaces as an error from
// Pipeline.Next.
//
// # Building a topology
//
//	identity := func(ctx context.Context, w *chain.Worker) error {
//	    for {
//	        msg, err := w.Get(ctx)
//	        if err != nil {
//	            if errors.Is(err, chain.ErrMailboxClosed) {
//	                return nil
//	            }
//	            return err
//	        }
//	        w.Send(msg)
//	    }
//	}
//
//	topology := chain.Chain(
//	    chain.Element(identity, nil),
//	    chain.Element(identity, nil),
//	)
//
// # Running it
//
//	pipe, err := chain.Create(ctx, topology, config.DefaultPipelineConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pipe.Feed("a")
//	pipe.Feed("b")
//	pipe.Close()
//
//	for {
//	    msg, done, err := pipe.Next(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if done {
//	        break
//	    }
//	    fmt.Println(msg)
//	}
//
// # Supervision
//
// Every worker links to its downstream successors before it is handed to its
// function. An abnormal exit (a non-nil return or a recovered panic) cascades through
// every non-trapping link until it reaches the library-inserted aggregator appended
// after the topology's terminal workers, which is the only component that traps exits
// rather than propagating them; the aggregator re-raises the same reason to the
// caller. A clean run instead counts one normal exit per terminal branch and signals
// end-of-stream once all of them have reported in.
package chain
