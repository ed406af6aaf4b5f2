package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "content.json")
	s := NewFileStore(path)

	if _, err := s.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Load on missing file = %v, want ErrEmpty", err)
	}

	if err := s.Save(ctx, content.Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Projects) != len(content.Default().Projects) {
		t.Errorf("projects = %d, want %d", len(doc.Projects), len(content.Default().Projects))
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("data dir has %d entries, temp file left behind", len(entries))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil || errors.Is(err, ErrEmpty) {
		t.Errorf("Load corrupt file = %v, want decode error", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, err := s.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Load on empty db = %v, want ErrEmpty", err)
	}

	for _, title := range []string{"first", "second", "third"} {
		doc := &content.Document{Skills: []content.Skill{{ID: "s", Title: title}}}
		if err := s.Save(ctx, doc); err != nil {
			t.Fatalf("Save(%s): %v", title, err)
		}
	}

	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Skills[0].Title != "third" {
		t.Errorf("latest title = %q, want third", doc.Skills[0].Title)
	}

	revs, err := s.Revisions(ctx, 10)
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(revs) != 3 || revs[0].ID < revs[2].ID {
		t.Errorf("revisions = %+v, want 3 newest first", revs)
	}

	n, err := s.Prune(ctx, 1)
	if err != nil || n != 2 {
		t.Errorf("Prune = %d, %v, want 2", n, err)
	}
	if doc, _ := s.Load(ctx); doc.Skills[0].Title != "third" {
		t.Errorf("prune removed the newest revision")
	}
}

func TestAsSaver(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "content.json"))
	saver := AsSaver(s)

	res := saver.Save(ctx, &content.Document{Projects: []content.Project{{ID: "p"}}})
	if res.Success {
		t.Error("saved a project without a title")
	}

	res = saver.Save(ctx, content.Default())
	if !res.Success || res.Message != "Content saved successfully" {
		t.Errorf("result = %+v", res)
	}
}
