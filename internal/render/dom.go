package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

// Inject parses page, replaces the children of every section container that
// has rendered markup and writes the result to w. Containers missing from the
// page, and sections missing from the map, are skipped.
func Inject(w io.Writer, page io.Reader, sections Sections) error {
	root, err := html.Parse(page)
	if err != nil {
		return fmt.Errorf("parsing page: %w", err)
	}

	byClass := make(map[string]content.Section, len(Containers))
	for sec, class := range Containers {
		byClass[class] = sec
	}

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			if sec, ok := containerOf(n, byClass); ok {
				if markup, ok := sections[sec]; ok {
					return replaceChildren(n, string(markup))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func containerOf(n *html.Node, byClass map[string]content.Section) (content.Section, bool) {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(a.Val) {
			if sec, ok := byClass[class]; ok {
				return sec, true
			}
		}
	}
	return "", false
}

func replaceChildren(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parsing fragment for %s: %w", n.Data, err)
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", mhtml.Minify)
	})
	return minifier
}

// Minify compacts a rendered page.
func Minify(page []byte) ([]byte, error) {
	out, err := getMinifier().Bytes("text/html", page)
	if err != nil {
		return nil, fmt.Errorf("minifying page: %w", err)
	}
	return out, nil
}

// Page renders doc into shell. With minified set the output is compacted.
func (r *Renderer) Page(shell []byte, doc *content.Document, minified bool) ([]byte, error) {
	sections, err := r.All(doc)
	if err != nil {
		return nil, err
	}
	return Assemble(shell, sections, minified)
}

// Assemble injects already rendered sections into shell.
func Assemble(shell []byte, sections Sections, minified bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Inject(&buf, bytes.NewReader(shell), sections); err != nil {
		return nil, err
	}
	if !minified {
		return buf.Bytes(), nil
	}
	return Minify(buf.Bytes())
}
