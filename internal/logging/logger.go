// Package logging constructs the application logger. Store internals and
// subprocess details are logged here and never surfaced to the operator;
// user-facing text is limited to the outcome kind and its message.
package logging

import "go.uber.org/zap"

// New returns the application logger. Debug mode switches to the human
// development encoder with debug-level output; otherwise the production
// JSON encoder at info level is used.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
