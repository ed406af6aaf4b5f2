package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

var (
	ErrNotFound       = errors.New("content: item not found")
	ErrUnknownSection = errors.New("content: unknown section")
)

// Section names one renderable part of the document. The values match the
// JSON keys of Document.
type Section string

const (
	SectionPersonalInfo   Section = "personalInfo"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionUpdates        Section = "updates"
	SectionSkills         Section = "skills"
	SectionBlogPosts      Section = "blogPosts"
)

// Sections lists every section in page order.
var Sections = []Section{
	SectionPersonalInfo,
	SectionProjects,
	SectionCertifications,
	SectionUpdates,
	SectionSkills,
	SectionBlogPosts,
}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// SaveResult is what the admin UI sees after a save attempt.
type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Saver persists a full document. Implementations report failure in the
// result rather than as an error.
type Saver interface {
	Save(ctx context.Context, doc *Document) SaveResult
}

// ChangeFunc receives the section that changed and a snapshot of the
// document after the change. Calls arrive in mutation order, one at a time,
// so a ChangeFunc must not mutate the Manager itself.
type ChangeFunc func(section Section, doc *Document)

type Option func(*Manager)

// WithSaver sets where Save sends the document.
func WithSaver(s Saver) Option {
	return func(m *Manager) { m.saver = s }
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// OnChange registers the hook run after every successful mutation.
func OnChange(fn ChangeFunc) Option {
	return func(m *Manager) { m.onChange = fn }
}

// Manager owns the in-memory document. Mutations stay in memory until Save
// is called.
type Manager struct {
	// notifyMu is held across a mutation and its change hook so hooks see
	// snapshots in the order the mutations happened.
	notifyMu sync.Mutex

	mu       sync.RWMutex
	doc      *Document
	saver    Saver
	now      func() time.Time
	onChange ChangeFunc
}

// NewManager copies doc, so later changes to the caller's value are not
// seen. A nil doc starts an empty document.
func NewManager(doc *Document, opts ...Option) *Manager {
	if doc == nil {
		doc = &Document{}
	}
	m := &Manager{doc: clone(doc), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns a deep copy of the current document.
func (m *Manager) Snapshot() *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.doc)
}

// Replace swaps the whole document and re-renders every section.
func (m *Manager) Replace(doc *Document) {
	if doc == nil {
		doc = &Document{}
	}
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.doc = clone(doc)
	snap := clone(m.doc)
	m.mu.Unlock()

	if m.onChange != nil {
		for _, sec := range Sections {
			m.onChange(sec, snap)
		}
	}
}

// Save hands a snapshot to the configured Saver.
func (m *Manager) Save(ctx context.Context) SaveResult {
	if m.saver == nil {
		return SaveResult{Success: false, Message: "No save target configured"}
	}
	return m.saver.Save(ctx, m.Snapshot())
}

// SetPersonalInfo replaces the hero section data.
func (m *Manager) SetPersonalInfo(info PersonalInfo) error {
	if err := validateItem(info); err != nil {
		return err
	}
	return m.mutate(SectionPersonalInfo, func(d *Document) error {
		d.PersonalInfo = &info
		return nil
	})
}

// mutate runs fn under the write lock and, when fn succeeds, passes a
// snapshot to the change hook. The document lock is released before the
// hook runs; notifyMu keeps hooks in mutation order.
func (m *Manager) mutate(sec Section, fn func(d *Document) error) error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if err := fn(m.doc); err != nil {
		m.mu.Unlock()
		return err
	}
	var snap *Document
	if m.onChange != nil {
		snap = clone(m.doc)
	}
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(sec, snap)
	}
	return nil
}

// AddProject validates p, gives it a "proj_" id and the next order, and
// appends it.
func (m *Manager) AddProject(p Project) (Project, error) {
	if err := validateItem(p); err != nil {
		return Project{}, err
	}
	err := m.mutate(SectionProjects, func(d *Document) error {
		p.ID = nextID("proj", m.now(), d.Projects)
		p.Order = len(d.Projects) + 1
		d.Projects = append(d.Projects, p)
		return nil
	})
	return p, err
}

// UpdateProject merges patch into the project with id. The id itself
// cannot be patched.
func (m *Manager) UpdateProject(id string, patch Patch) (Project, error) {
	var out Project
	err := m.mutate(SectionProjects, func(d *Document) error {
		return updateIn(d.Projects, id, patch, &out)
	})
	return out, err
}

// DeleteProject reports whether a project with id was removed.
func (m *Manager) DeleteProject(id string) bool {
	return m.mutate(SectionProjects, func(d *Document) error {
		return removeFrom(&d.Projects, id)
	}) == nil
}

func (m *Manager) AddCertification(c Certification) (Certification, error) {
	if err := validateItem(c); err != nil {
		return Certification{}, err
	}
	err := m.mutate(SectionCertifications, func(d *Document) error {
		c.ID = nextID("cert", m.now(), d.Certifications)
		c.Order = len(d.Certifications) + 1
		d.Certifications = append(d.Certifications, c)
		return nil
	})
	return c, err
}

func (m *Manager) UpdateCertification(id string, patch Patch) (Certification, error) {
	var out Certification
	err := m.mutate(SectionCertifications, func(d *Document) error {
		return updateIn(d.Certifications, id, patch, &out)
	})
	return out, err
}

func (m *Manager) DeleteCertification(id string) bool {
	return m.mutate(SectionCertifications, func(d *Document) error {
		return removeFrom(&d.Certifications, id)
	}) == nil
}

func (m *Manager) AddUpdate(u Update) (Update, error) {
	if err := validateItem(u); err != nil {
		return Update{}, err
	}
	err := m.mutate(SectionUpdates, func(d *Document) error {
		u.ID = nextID("update", m.now(), d.Updates)
		u.Order = len(d.Updates) + 1
		d.Updates = append(d.Updates, u)
		return nil
	})
	return u, err
}

func (m *Manager) UpdateUpdate(id string, patch Patch) (Update, error) {
	var out Update
	err := m.mutate(SectionUpdates, func(d *Document) error {
		return updateIn(d.Updates, id, patch, &out)
	})
	return out, err
}

func (m *Manager) DeleteUpdate(id string) bool {
	return m.mutate(SectionUpdates, func(d *Document) error {
		return removeFrom(&d.Updates, id)
	}) == nil
}

func (m *Manager) AddSkill(s Skill) (Skill, error) {
	if err := validateItem(s); err != nil {
		return Skill{}, err
	}
	err := m.mutate(SectionSkills, func(d *Document) error {
		s.ID = nextID("skill", m.now(), d.Skills)
		s.Order = len(d.Skills) + 1
		d.Skills = append(d.Skills, s)
		return nil
	})
	return s, err
}

func (m *Manager) UpdateSkill(id string, patch Patch) (Skill, error) {
	var out Skill
	err := m.mutate(SectionSkills, func(d *Document) error {
		return updateIn(d.Skills, id, patch, &out)
	})
	return out, err
}

func (m *Manager) DeleteSkill(id string) bool {
	return m.mutate(SectionSkills, func(d *Document) error {
		return removeFrom(&d.Skills, id)
	}) == nil
}

// AddBlogPost appends a post with a "post_" id. Drafts are stored but not
// rendered.
func (m *Manager) AddBlogPost(b BlogPost) (BlogPost, error) {
	if err := validateItem(b); err != nil {
		return BlogPost{}, err
	}
	err := m.mutate(SectionBlogPosts, func(d *Document) error {
		b.ID = nextID("post", m.now(), d.BlogPosts)
		b.Order = len(d.BlogPosts) + 1
		d.BlogPosts = append(d.BlogPosts, b)
		return nil
	})
	return b, err
}

func (m *Manager) UpdateBlogPost(id string, patch Patch) (BlogPost, error) {
	var out BlogPost
	err := m.mutate(SectionBlogPosts, func(d *Document) error {
		return updateIn(d.BlogPosts, id, patch, &out)
	})
	return out, err
}

func (m *Manager) DeleteBlogPost(id string) bool {
	return m.mutate(SectionBlogPosts, func(d *Document) error {
		return removeFrom(&d.BlogPosts, id)
	}) == nil
}

type keyed interface {
	key() string
}

func indexOf[T keyed](list []T, id string) int {
	for i := range list {
		if list[i].key() == id {
			return i
		}
	}
	return -1
}

// nextID builds "<prefix>_<unix millis>". Millis are bumped while the id is
// already taken in list.
func nextID[T keyed](prefix string, now time.Time, list []T) string {
	ms := now.UnixMilli()
	for {
		id := prefix + "_" + strconv.FormatInt(ms, 10)
		if indexOf(list, id) < 0 {
			return id
		}
		ms++
	}
}

func updateIn[T keyed](list []T, id string, patch Patch, out *T) error {
	i := indexOf(list, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	var next T
	if err := patch.merge(list[i], &next); err != nil {
		return err
	}
	if err := validateItem(next); err != nil {
		return err
	}
	list[i] = next
	*out = next
	return nil
}

// removeFrom leaves an empty, non-nil list behind when the last item goes,
// so the section still renders and clears its container.
func removeFrom[T keyed](list *[]T, id string) error {
	i := indexOf(*list, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rest := make([]T, 0, len(*list)-1)
	rest = append(rest, (*list)[:i]...)
	*list = append(rest, (*list)[i+1:]...)
	return nil
}

func clone(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		// Document holds only JSON-safe fields.
		panic(err)
	}
	out := &Document{}
	if err := json.Unmarshal(b, out); err != nil {
		panic(err)
	}
	return out
}
