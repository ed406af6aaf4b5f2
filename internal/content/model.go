package content

import (
	"strings"
	"time"
)

// Document is the whole portfolio content, loaded and saved as one JSON
// value. A nil list means the section has no data and is not rendered; an
// empty list renders an empty container, so lists are never omitted.
type Document struct {
	PersonalInfo   *PersonalInfo   `json:"personalInfo,omitempty"`
	Projects       []Project       `json:"projects" validate:"dive"`
	Certifications []Certification `json:"certifications" validate:"dive"`
	Updates        []Update        `json:"updates" validate:"dive"`
	Skills         []Skill         `json:"skills" validate:"dive"`
	BlogPosts      []BlogPost      `json:"blogPosts" validate:"dive"`
}

// PersonalInfo fills the hero section.
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title,omitempty"`
	Tagline  string `json:"tagline,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Location string `json:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Socials  []Link `json:"socials,omitempty" validate:"dive"`
}

// Link is an outbound link on a project card or in the socials list.
// Type selects the icon (github, website, demo, video).
type Link struct {
	Type string `json:"type"`
	URL  string `json:"url" validate:"required"`
	Text string `json:"text,omitempty"`
}

// Project is a card in the projects grid. Only featured projects are shown,
// ordered by Order.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Links       []Link   `json:"links,omitempty" validate:"dive"`
	Featured    bool     `json:"featured"`
	Order       int      `json:"order"`
}

type Certification struct {
	ID      string `json:"id"`
	Title   string `json:"title" validate:"required"`
	Issuer  string `json:"issuer"`
	Date    string `json:"date"`
	Icon    string `json:"icon,omitempty"`
	PDFPath string `json:"pdfPath,omitempty"`
	Order   int    `json:"order"`
}

// Update is a dated news item ("started a new job", "shipped v2").
type Update struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Tag         string `json:"tag,omitempty"`
	Order       int    `json:"order"`
}

type Skill struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
}

// BlogPost is a teaser for an article. Excerpt is Markdown.
type BlogPost struct {
	ID      string   `json:"id"`
	Title   string   `json:"title" validate:"required"`
	Excerpt string   `json:"excerpt"`
	Date    string   `json:"date"`
	URL     string   `json:"url,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Draft   bool     `json:"draft,omitempty"`
	Order   int      `json:"order"`
}

func (p Project) key() string       { return p.ID }
func (c Certification) key() string { return c.ID }
func (u Update) key() string        { return u.ID }
func (s Skill) key() string         { return s.ID }
func (b BlogPost) key() string      { return b.ID }

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"January 2006",
	"Jan 2006",
}

// ParseDate reads the date formats found in content documents. The zero
// time and false are returned for anything unrecognised.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
