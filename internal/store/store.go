// Package store persists the full content document.
package store

import (
	"context"
	"errors"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

// ErrEmpty means nothing has been saved yet.
var ErrEmpty = errors.New("store: no saved content")

// Store loads and saves whole documents. Load returns ErrEmpty before the
// first Save.
type Store interface {
	Load(ctx context.Context) (*content.Document, error)
	Save(ctx context.Context, doc *content.Document) error
	Close() error
}

type saver struct {
	s Store
}

// AsSaver lets a content.Manager persist straight into a store.
func AsSaver(s Store) content.Saver {
	return saver{s: s}
}

func (a saver) Save(ctx context.Context, doc *content.Document) content.SaveResult {
	if err := content.Validate(doc); err != nil {
		return content.SaveResult{Success: false, Message: err.Error()}
	}
	if err := a.s.Save(ctx, doc); err != nil {
		return content.SaveResult{Success: false, Message: "Failed to save content"}
	}
	return content.SaveResult{Success: true, Message: "Content saved successfully"}
}
