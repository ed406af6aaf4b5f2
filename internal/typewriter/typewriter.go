// Package typewriter produces the frames of a character-by-character text
// animation.
package typewriter

import (
	"context"
	"sync"
	"time"
)

// Frames sends every rune prefix of text, one per interval, then closes the
// channel. Cancelling ctx stops the run and closes the channel early.
func Frames(ctx context.Context, text string, interval time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		runes := []rune(text)
		if len(runes) == 0 {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 1; i <= len(runes); i++ {
			select {
			case out <- string(runes[:i]):
			case <-ctx.Done():
				return
			}
			if i == len(runes) {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Typewriter runs one animation at a time. Starting a new run stops the
// previous one, so restarts never leave old timers behind.
type Typewriter struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(interval time.Duration) *Typewriter {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Typewriter{interval: interval}
}

// Start begins a run over text and returns its frames.
func (t *Typewriter) Start(ctx context.Context, text string) <-chan string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	return Frames(runCtx, text, t.interval)
}

func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
