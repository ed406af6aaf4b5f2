package server

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-cms/internal/typewriter"
)

// broadcaster fans tagline changes out to open typewriter streams. Slow
// subscribers only ever see the latest value.
type broadcaster struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan string]struct{})}
}

func (b *broadcaster) subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
}

func (b *broadcaster) publish(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// handleTypewriter streams the tagline animation as server-sent events. A
// tagline change restarts the animation on every open stream.
func (s *Server) handleTypewriter(c *gin.Context) {
	ctx := c.Request.Context()
	updates, unsubscribe := s.taglines.subscribe()
	defer unsubscribe()

	tw := typewriter.New(s.cfg.TypewriterInterval)
	defer tw.Stop()
	frames := tw.Start(ctx, s.currentTagline())

	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case frame, ok := <-frames:
			if !ok {
				frames = nil
				c.SSEvent("done", "")
				return true
			}
			c.SSEvent("frame", frame)
			return true
		case tagline := <-updates:
			frames = tw.Start(ctx, tagline)
			c.SSEvent("restart", tagline)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
