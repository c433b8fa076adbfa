// Package report owns failure presentation. The batch core never
// renders dialogs or writes artifacts directly; it talks to a Reporter
// and the adapters here decide how a human actually sees the message.
package report

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"qbgen/internal/logger"
)

// Artifact file names written under the working root.
const (
	ReferenceErrorFile = "REFERENCE_ERROR.csv"
	ErrorDetailsFile   = "ERROR_DETAILS.csv"
	CrashTraceFile     = "CRASH_TRACE.txt"
)

// Reporter is the capability the pipeline uses to surface failures.
// Fatal announces a condition that stopped the run; Recoverable records
// a per-row condition the run survived.
type Reporter interface {
	Fatal(msg string)
	Recoverable(msg, location string)
}

// ConsoleReporter renders notices on stderr and through the structured
// log. It is the non-interactive replacement for the blocking dialog
// the operators previously saw.
type ConsoleReporter struct {
	log zerolog.Logger
}

// NewConsoleReporter creates a console-backed reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		log: logger.WithComponent("report"),
	}
}

// Fatal prints a blocking-style notice for conditions that abort the run.
func (r *ConsoleReporter) Fatal(msg string) {
	r.log.Error().Msg(msg)
	fmt.Fprintf(os.Stderr, "\n!! %s\n\n", msg)
}

// Recoverable records a degraded-trust condition without stopping anything.
func (r *ConsoleReporter) Recoverable(msg, location string) {
	r.log.Warn().Str("location", location).Msg(msg)
}
