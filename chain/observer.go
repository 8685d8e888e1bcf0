package chain

import (
	"context"
	"time"

	"github.com/tailored-agentic-units/chainrt/observability"
)

// observerContext pairs the root context a pipeline was created with against the
// observability.Observer it reports to, so build/worker/aggregator events can be
// emitted without threading both through every call site. A nil obs is valid and
// makes every method a no-op.
type observerContext struct {
	ctx context.Context
	obs observability.Observer
}

func levelFor(reason error) observability.Level {
	if reason != nil {
		return observability.LevelError
	}
	return observability.LevelVerbose
}

func (o *observerContext) emit(typ observability.EventType, source string, level observability.Level, data map[string]any) {
	if o == nil || o.obs == nil {
		return
	}
	o.obs.OnEvent(o.ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}

func (o *observerContext) buildStart(want int) {
	o.emit(observability.EventBuildStart, "chain.Create", observability.LevelInfo, map[string]any{
		"terminal_branches": want,
	})
}

func (o *observerContext) buildComplete(got int) {
	o.emit(observability.EventBuildComplete, "chain.Create", observability.LevelInfo, map[string]any{
		"entry_points": got,
	})
}

func (o *observerContext) workerStart(h *Handle) {
	o.emit(observability.EventWorkerStart, "chain.Worker", observability.LevelVerbose, map[string]any{
		"handle_id": h.ID(),
	})
}

func (o *observerContext) workerExit(h *Handle, reason error) {
	data := map[string]any{"handle_id": h.ID(), "abnormal": reason != nil}
	if reason != nil {
		data["reason"] = reason.Error()
	}
	o.emit(observability.EventWorkerExit, "chain.Worker", levelFor(reason), data)
}

func (o *observerContext) aggregatorComplete(h *Handle, reason error) {
	data := map[string]any{"handle_id": h.ID(), "abnormal": reason != nil}
	if reason != nil {
		data["reason"] = reason.Error()
	}
	o.emit(observability.EventAggregatorComplete, "chain.Aggregator", levelFor(reason), data)
}
