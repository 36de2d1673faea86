package vtcore

import "log"

// DiagnosticSink receives non-fatal problems the terminal encounters while
// decoding: unknown private modes, malformed sequences it chose to ignore
// rather than reject. It never carries fatal errors — those surface through
// [Loop]'s state transition to TERMINATED instead.
type DiagnosticSink interface {
	// LogError records msg, optionally wrapping err for context.
	LogError(msg string, err error)
}

// NoopDiagnostics discards everything.
type NoopDiagnostics struct{}

func (NoopDiagnostics) LogError(msg string, err error) {}

// StdDiagnostics writes through the standard [log] package, prefixed
// "vtcore: ".
type StdDiagnostics struct{}

func (StdDiagnostics) LogError(msg string, err error) {
	if err != nil {
		log.Printf("vtcore: %s: %v", msg, err)
		return
	}
	log.Printf("vtcore: %s", msg)
}

var _ DiagnosticSink = NoopDiagnostics{}
var _ DiagnosticSink = StdDiagnostics{}
