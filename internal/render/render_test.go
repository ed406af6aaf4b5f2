package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestLinkIcon(t *testing.T) {
	tests := map[string]string{
		"github":  "fab fa-github",
		"website": "fas fa-external-link-alt",
		"demo":    "fas fa-play",
		"video":   "fas fa-video",
		"gitlab":  "fas fa-link",
		"":        "fas fa-link",
	}
	for in, want := range tests {
		if got := LinkIcon(in); got != want {
			t.Errorf("LinkIcon(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProjectsFeaturedAndOrdered(t *testing.T) {
	r := newRenderer(t)
	doc := &content.Document{Projects: []content.Project{
		{ID: "c", Title: "Third", Featured: true, Order: 3},
		{ID: "a", Title: "First", Featured: true, Order: 1},
		{ID: "x", Title: "Hidden", Featured: false, Order: 2},
		{ID: "d", Title: "Demo", Featured: true, Order: 2, Links: []content.Link{{Type: "demo", URL: "https://example.com/d"}}},
	}}

	out, ok, err := r.Section(content.SectionProjects, doc)
	if err != nil || !ok {
		t.Fatalf("Section = %v, %v", ok, err)
	}
	s := string(out)
	if strings.Contains(s, "Hidden") {
		t.Error("non-featured project rendered")
	}
	first, demo, third := strings.Index(s, "First"), strings.Index(s, "Demo"), strings.Index(s, "Third")
	if !(first < demo && demo < third) {
		t.Errorf("projects out of order: First@%d Demo@%d Third@%d", first, demo, third)
	}
	if !strings.Contains(s, `<i class="fas fa-play"></i> Demo`) {
		t.Errorf("demo link missing icon or title-cased text:\n%s", s)
	}
	if doc.Projects[0].ID != "c" {
		t.Error("rendering reordered the document")
	}
}

func TestUpdatesNewestFirst(t *testing.T) {
	r := newRenderer(t)
	doc := &content.Document{Updates: []content.Update{
		{Title: "Old", Date: "2023-01-10"},
		{Title: "Undated", Date: "soon"},
		{Title: "New", Date: "2024-06-02"},
	}}

	out, _, err := r.Section(content.SectionUpdates, doc)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !(strings.Index(s, "New") < strings.Index(s, "Old") && strings.Index(s, "Old") < strings.Index(s, "Undated")) {
		t.Errorf("updates out of order:\n%s", s)
	}
	if !strings.Contains(s, `<span class="month">June</span>`) || !strings.Contains(s, `<span class="year">2024</span>`) {
		t.Errorf("month/year missing:\n%s", s)
	}
}

func TestBlogPostsSkipDrafts(t *testing.T) {
	r := newRenderer(t)
	doc := &content.Document{BlogPosts: []content.BlogPost{
		{Title: "Draft", Draft: true, Date: "2025-01-01"},
		{Title: "Live", Excerpt: "Some **bold** text", Date: "2024-02-03", URL: "/blog/live"},
	}}

	out, _, err := r.Section(content.SectionBlogPosts, doc)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if strings.Contains(s, "Draft") {
		t.Error("draft post rendered")
	}
	if !strings.Contains(s, "<strong>bold</strong>") {
		t.Errorf("excerpt markdown not rendered:\n%s", s)
	}
	if !strings.Contains(s, "February 3, 2024") {
		t.Errorf("published date missing:\n%s", s)
	}
}

func TestValuesAreEscaped(t *testing.T) {
	r := newRenderer(t)
	doc := &content.Document{Skills: []content.Skill{
		{Title: `<script>alert(1)</script>`, Description: "x"},
	}, Projects: []content.Project{
		{Title: "p", Featured: true, Links: []content.Link{{Type: "website", URL: "javascript:alert(1)"}}},
	}}

	sections, err := r.All(doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(sections[content.SectionSkills]), "<script>") {
		t.Error("skill title not escaped")
	}
	if strings.Contains(string(sections[content.SectionProjects]), "javascript:") {
		t.Error("unsafe link url not filtered")
	}
}

func TestMissingDataSkipsSection(t *testing.T) {
	r := newRenderer(t)
	sections, err := r.All(&content.Document{Skills: []content.Skill{{Title: "Go"}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Errorf("sections = %d, want only skills", len(sections))
	}
	if _, ok := sections[content.SectionSkills]; !ok {
		t.Error("skills section missing")
	}
}

func TestInject(t *testing.T) {
	shell := `<!DOCTYPE html><html><body>
<section><div class="grid projects-grid"><p>loading</p></div></section>
<div class="skills-grid">static skills</div>
</body></html>`

	sections := Sections{
		content.SectionProjects:       `<div class="project-card">P</div>`,
		content.SectionCertifications: `<a class="cert-card">C</a>`,
	}
	var buf bytes.Buffer
	if err := Inject(&buf, strings.NewReader(shell), sections); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "loading") {
		t.Error("placeholder not replaced")
	}
	if !strings.Contains(out, `<div class="grid projects-grid"><div class="project-card">P</div></div>`) {
		t.Errorf("projects not injected:\n%s", out)
	}
	if !strings.Contains(out, "static skills") {
		t.Error("container without section was modified")
	}
	if strings.Contains(out, "cert-card") {
		t.Error("section without container was added to the page")
	}
}

func TestPageWithFakeContent(t *testing.T) {
	f := gofakeit.New(7)
	doc := &content.Document{PersonalInfo: &content.PersonalInfo{Name: f.Name(), Tagline: f.HackerPhrase()}}
	for i := 0; i < 5; i++ {
		doc.Projects = append(doc.Projects, content.Project{
			ID: f.UUID(), Title: f.AppName(), Description: f.HackerPhrase(), Featured: true, Order: i,
		})
	}

	shell := []byte(`<html><body><div class="hero-content"></div><div class="projects-grid"></div></body></html>`)
	out, err := newRenderer(t).Page(shell, doc, true)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if got := strings.Count(string(out), "project-card"); got != 5 {
		t.Errorf("project cards = %d, want 5", got)
	}
	if strings.Contains(string(out), "\n\t") {
		t.Error("page was not minified")
	}
}

func TestEmptiedSectionClearsContainer(t *testing.T) {
	shell := []byte(`<html><body><div class="projects-grid"><p>Loading projects</p></div><div class="skills-grid"><p>Loading skills</p></div></body></html>`)
	m := content.NewManager(&content.Document{Projects: []content.Project{
		{ID: "p1", Title: "Only Project", Featured: true},
	}})
	if !m.DeleteProject("p1") {
		t.Fatal("DeleteProject(p1) = false")
	}

	out, err := newRenderer(t).Page(shell, m.Snapshot(), false)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "Loading projects") || strings.Contains(s, "Only Project") {
		t.Errorf("projects container not cleared:\n%s", s)
	}
	if !strings.Contains(s, "Loading skills") {
		t.Error("section without data was cleared")
	}
}
