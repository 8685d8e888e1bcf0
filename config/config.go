// Package config defines the configuration surface for the chain runtime.
//
// Configuration structs are plain data used only during initialization, then
// resolved into runtime objects (here: an observability.Observer looked up by
// name). Default...() constructors supply sensible defaults, and Merge layers a
// caller-supplied override on top.
package config

// PipelineConfig configures a single Create call.
type PipelineConfig struct {
	// Observer selects the registered observability.Observer by name
	// ("noop", "slog", or a custom name registered via observability.RegisterObserver).
	Observer string `json:"observer"`

	// MailboxHint is a mailbox capacity hint carried in the configuration. No
	// code path reads it: mailboxes are unbounded and allocated without a
	// starting capacity, whatever this value is.
	MailboxHint int `json:"mailbox_hint"`
}

// DefaultPipelineConfig returns sensible defaults: structured logging via "slog"
// and no mailbox pre-allocation hint.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Observer:    "slog",
		MailboxHint: 0,
	}
}

// Merge layers non-zero fields of source onto c.
func (c *PipelineConfig) Merge(source *PipelineConfig) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.MailboxHint > 0 {
		c.MailboxHint = source.MailboxHint
	}
}
