package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while a site is being generated. Generation
// has no known total, so reporting is spinner-shaped: a label, streamed
// byte counts, done.
type Reporter interface {
	Start(label string)
	Add(bytes int)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a spinner with a running byte count.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(label string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Add(bytes int) {
	if r.bar != nil {
		_ = r.bar.Add(bytes)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	received int
}

func (r *CIReporter) Start(label string) {
	fmt.Fprintf(os.Stderr, "%s\n", label)
}

func (r *CIReporter) Add(bytes int) {
	r.received += bytes
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(os.Stderr, "Received %d bytes\n", r.received)
}
