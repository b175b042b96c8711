package telemetry

import "github.com/posthog/posthog-go"

var _ posthog.Logger = logger{}

// logger drops every PostHog log line. Output on stderr would corrupt the
// TUI, and a blocked analytics endpoint is not the user's problem.
type logger struct{}

func (logger) Debugf(format string, args ...any) {}
func (logger) Logf(format string, args ...any)   {}
func (logger) Warnf(format string, args ...any)  {}
func (logger) Errorf(format string, args ...any) {}
