// Package loader fetches the content document from an ordered list of
// sources and falls back to the built-in document when all of them fail.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/portfolio-cms/internal/content"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

// Source is one tier of the fallback chain.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*content.Document, error)
}

// HTTPSource GETs a JSON document. Only a 2xx response with a body that
// decodes counts as success.
type HTTPSource struct {
	URL    string
	Client *http.Client
	// CacheBust appends v=<unix millis> so stale CDN or browser copies of a
	// static file are skipped.
	CacheBust bool
	Now       func() time.Time
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) (*content.Document, error) {
	target, err := s.target()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient(s.Client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetching %s: status %d", target, resp.StatusCode)
	}
	return decode(resp.Body)
}

func (s *HTTPSource) target() (string, error) {
	if !s.CacheBust {
		return s.URL, nil
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", s.URL, err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	q := u.Query()
	q.Set("v", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FileSource reads the document from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Fetch(_ context.Context) (*content.Document, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()
	return decode(f)
}

// StoreSource reads the latest saved document from a store.
type StoreSource struct {
	Store store.Store
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) Fetch(ctx context.Context) (*content.Document, error) {
	return s.Store.Load(ctx)
}

// Tier reports which source produced a document. Index is the position in
// the source list, or -1 for the built-in default.
type Tier struct {
	Index int
	Name  string
}

func (t Tier) IsDefault() bool { return t.Index < 0 }

// Loader walks its sources in order.
type Loader struct {
	Sources []Source
}

// New returns a Loader that tries sources in the given order.
func New(sources ...Source) *Loader {
	return &Loader{Sources: sources}
}

// Load never fails: each source error is logged and the next tier is tried,
// ending at content.Default.
func (l *Loader) Load(ctx context.Context) (*content.Document, Tier) {
	for i, src := range l.Sources {
		doc, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("Content source %s not available, falling back: %v", src.Name(), err)
			continue
		}
		return doc, Tier{Index: i, Name: src.Name()}
	}
	log.Println("No content source available, using built-in content")
	return content.Default(), Tier{Index: -1, Name: "default"}
}

func decode(r io.Reader) (*content.Document, error) {
	doc := &content.Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	return doc, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 10 * time.Second}
}
