package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle drawn while a pipeline
// stage runs.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a message on stderr while a partition or render is in
// flight. It honors context cancellation so Ctrl-C during a long run
// clears the line instead of leaving a half-drawn frame.
type Spinner struct {
	message  string
	ctx      context.Context
	cancel   context.CancelFunc
	quit     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

// newSpinner creates a spinner that runs until stopped.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when ctx is
// cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		ctx:      sctx,
		cancel:   cancel,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.quit:
				return
			case <-ticker.C:
				icon := spinnerFrames[frame%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(icon), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call more than
// once.
func (s *Spinner) Stop() {
	s.cancel()
	s.stopOnce.Do(func() { close(s.quit) })
	<-s.finished
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints a success line in its
// place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
