package content

import (
	"encoding/json"
	"fmt"
)

// AddItem decodes raw into the record type of sec, validates it and adds it.
// It serves admin endpoints that address sections by name.
func (m *Manager) AddItem(sec Section, raw []byte) (any, error) {
	switch sec {
	case SectionProjects:
		var p Project
		if err := decodeItem(raw, &p); err != nil {
			return nil, err
		}
		return m.AddProject(p)
	case SectionCertifications:
		var c Certification
		if err := decodeItem(raw, &c); err != nil {
			return nil, err
		}
		return m.AddCertification(c)
	case SectionUpdates:
		var u Update
		if err := decodeItem(raw, &u); err != nil {
			return nil, err
		}
		return m.AddUpdate(u)
	case SectionSkills:
		var s Skill
		if err := decodeItem(raw, &s); err != nil {
			return nil, err
		}
		return m.AddSkill(s)
	case SectionBlogPosts:
		var b BlogPost
		if err := decodeItem(raw, &b); err != nil {
			return nil, err
		}
		return m.AddBlogPost(b)
	case SectionPersonalInfo:
		var info PersonalInfo
		if err := decodeItem(raw, &info); err != nil {
			return nil, err
		}
		if err := m.SetPersonalInfo(info); err != nil {
			return nil, err
		}
		return info, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, sec)
}

// UpdateItem patches the item with id in sec. Personal info has no ids and
// is replaced through AddItem instead.
func (m *Manager) UpdateItem(sec Section, id string, patch Patch) (any, error) {
	switch sec {
	case SectionProjects:
		return m.UpdateProject(id, patch)
	case SectionCertifications:
		return m.UpdateCertification(id, patch)
	case SectionUpdates:
		return m.UpdateUpdate(id, patch)
	case SectionSkills:
		return m.UpdateSkill(id, patch)
	case SectionBlogPosts:
		return m.UpdateBlogPost(id, patch)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, sec)
}

// DeleteItem reports whether the item with id was removed from sec.
func (m *Manager) DeleteItem(sec Section, id string) (bool, error) {
	switch sec {
	case SectionProjects:
		return m.DeleteProject(id), nil
	case SectionCertifications:
		return m.DeleteCertification(id), nil
	case SectionUpdates:
		return m.DeleteUpdate(id), nil
	case SectionSkills:
		return m.DeleteSkill(id), nil
	case SectionBlogPosts:
		return m.DeleteBlogPost(id), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownSection, sec)
}

func decodeItem(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding item: %w", err)
	}
	return nil
}
