// Package render turns a content document into HTML fragments, one per page
// section, and places them into the matching containers of a page shell.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

// Containers maps each section to the CSS class of the element it fills.
var Containers = map[content.Section]string{
	content.SectionPersonalInfo:   "hero-content",
	content.SectionProjects:       "projects-grid",
	content.SectionCertifications: "certifications-grid",
	content.SectionUpdates:        "updates-grid",
	content.SectionSkills:         "skills-grid",
	content.SectionBlogPosts:      "blog-grid",
}

var linkIcons = map[string]string{
	"github":  "fab fa-github",
	"website": "fas fa-external-link-alt",
	"demo":    "fas fa-play",
	"video":   "fas fa-video",
}

// LinkIcon returns the Font Awesome classes for a link type.
func LinkIcon(linkType string) string {
	if icon, ok := linkIcons[linkType]; ok {
		return icon
	}
	return "fas fa-link"
}

// Sections holds rendered markup keyed by section. A section is missing
// when the document had no data for it.
type Sections map[content.Section]template.HTML

// Renderer executes the embedded section templates.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the section templates with GFM Markdown support.
func New() (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
	tmpl, err := template.New("sections").Funcs(template.FuncMap{
		"linkIcon": LinkIcon,
		"linkText": r.linkText,
		"markdown": r.markdown,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing section templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Section renders one section. ok is false when the document has no data
// for it, in which case the container must be left untouched.
func (r *Renderer) Section(sec content.Section, doc *content.Document) (html template.HTML, ok bool, err error) {
	if doc == nil {
		return "", false, nil
	}
	var data any
	switch sec {
	case content.SectionPersonalInfo:
		if doc.PersonalInfo == nil {
			return "", false, nil
		}
		data = doc.PersonalInfo
	case content.SectionProjects:
		if doc.Projects == nil {
			return "", false, nil
		}
		data = featuredProjects(doc.Projects)
	case content.SectionCertifications:
		if doc.Certifications == nil {
			return "", false, nil
		}
		data = sortedCertifications(doc.Certifications)
	case content.SectionUpdates:
		if doc.Updates == nil {
			return "", false, nil
		}
		data = updateCards(doc.Updates)
	case content.SectionSkills:
		if doc.Skills == nil {
			return "", false, nil
		}
		data = sortedSkills(doc.Skills)
	case content.SectionBlogPosts:
		if doc.BlogPosts == nil {
			return "", false, nil
		}
		data = postCards(doc.BlogPosts)
	default:
		return "", false, fmt.Errorf("%w: %q", content.ErrUnknownSection, sec)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(sec), data); err != nil {
		return "", false, fmt.Errorf("rendering %s: %w", sec, err)
	}
	return template.HTML(buf.String()), true, nil
}

// All renders every section that has data.
func (r *Renderer) All(doc *content.Document) (Sections, error) {
	out := Sections{}
	for _, sec := range content.Sections {
		html, ok, err := r.Section(sec, doc)
		if err != nil {
			return nil, err
		}
		if ok {
			out[sec] = html
		}
	}
	return out, nil
}

func (r *Renderer) linkText(l content.Link) string {
	if l.Text != "" {
		return l.Text
	}
	if l.Type == "" {
		return "Link"
	}
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(l.Type)
}

// markdown converts Markdown to HTML. goldmark drops raw HTML unless told
// otherwise, so the result is safe to mark as template.HTML.
func (r *Renderer) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

func featuredProjects(all []content.Project) []content.Project {
	out := make([]content.Project, 0, len(all))
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedCertifications(all []content.Certification) []content.Certification {
	out := append([]content.Certification(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedSkills(all []content.Skill) []content.Skill {
	out := append([]content.Skill(nil), all...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
