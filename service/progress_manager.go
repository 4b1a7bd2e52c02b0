package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/ludo-technologies/scorediff/domain"
)

// ProgressManagerImpl implements domain.ProgressReporter with a terminal
// progress bar. On non-terminal writers progress reporting is silent.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
}

// NewProgressManager creates a progress reporter writing to stderr
func NewProgressManager() domain.ProgressReporter {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewProgressManagerWithWriter creates a progress reporter for the given
// writer, interactive only when the writer is a terminal.
func NewProgressManagerWithWriter(writer io.Writer) domain.ProgressReporter {
	interactive := false
	if file, ok := writer.(*os.File); ok {
		interactive = term.IsTerminal(int(file.Fd()))
	}
	return &ProgressManagerImpl{writer: writer, interactive: interactive}
}

// Start begins reporting over total units of work
func (pm *ProgressManagerImpl) Start(total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if !pm.interactive || pm.progressBar != nil {
		return
	}
	pm.progressBar = pm.createProgressBar("Comparing", total)
}

// Step records one completed unit
func (pm *ProgressManagerImpl) Step() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Add(1)
	}
}

// Finish completes reporting
func (pm *ProgressManagerImpl) Finish() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
}

func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// NoopProgressReporter discards all progress events.
type NoopProgressReporter struct{}

func (NoopProgressReporter) Start(int) {}
func (NoopProgressReporter) Step()     {}
func (NoopProgressReporter) Finish()   {}
