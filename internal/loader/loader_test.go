package loader

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zachkp/portfolio-cms/internal/content"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

func serveDoc(t *testing.T, doc *content.Document) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadPrefersFirstSource(t *testing.T) {
	api := serveDoc(t, &content.Document{Skills: []content.Skill{{Title: "from api"}}})
	static := serveDoc(t, &content.Document{Skills: []content.Skill{{Title: "from static"}}})

	doc, tier := New(&HTTPSource{URL: api.URL}, &HTTPSource{URL: static.URL}).Load(context.Background())
	if tier.Index != 0 {
		t.Errorf("tier = %+v, want 0", tier)
	}
	if doc.Skills[0].Title != "from api" {
		t.Errorf("title = %q, want from api", doc.Skills[0].Title)
	}
}

func TestLoadFallsBackOnStatus(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer api.Close()
	static := serveDoc(t, &content.Document{Skills: []content.Skill{{Title: "from static"}}})

	doc, tier := New(&HTTPSource{URL: api.URL}, &HTTPSource{URL: static.URL}).Load(context.Background())
	if tier.Index != 1 {
		t.Errorf("tier = %+v, want 1", tier)
	}
	if doc.Skills[0].Title != "from static" {
		t.Errorf("title = %q", doc.Skills[0].Title)
	}
}

func TestLoadFallsBackOnBadJSON(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer bad.Close()

	doc, tier := New(&HTTPSource{URL: bad.URL}).Load(context.Background())
	if !tier.IsDefault() {
		t.Errorf("tier = %+v, want default", tier)
	}
	if len(doc.Projects) == 0 {
		t.Error("default document has no projects")
	}
}

func TestLoadDefaultWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	doc, tier := New(
		&HTTPSource{URL: url + "/api/content"},
		&FileSource{Path: filepath.Join(t.TempDir(), "missing.json")},
	).Load(context.Background())
	if !tier.IsDefault() || doc == nil {
		t.Errorf("tier = %+v, doc = %v, want default document", tier, doc)
	}
}

func TestCacheBust(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	src := &HTTPSource{
		URL:       srv.URL + "/data/content.json?lang=en",
		CacheBust: true,
		Now:       func() time.Time { return time.UnixMilli(1234) },
	}
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(gotQuery, "v=1234") || !strings.Contains(gotQuery, "lang=en") {
		t.Errorf("query = %q, want v=1234 and lang=en", gotQuery)
	}
}

func TestFileAndStoreSources(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte(`{"skills":[{"id":"s1","title":"file"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	empty := store.NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	doc, tier := New(&StoreSource{Store: empty}, &FileSource{Path: path}).Load(ctx)
	if tier.Index != 1 || doc.Skills[0].Title != "file" {
		t.Errorf("tier = %+v, skills = %+v", tier, doc.Skills)
	}
}

func TestClientSave(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
		message string
	}{
		{"ok", http.StatusOK, `{"message":"Content saved successfully"}`, true, "Content saved successfully"},
		{"error body", http.StatusBadRequest, `{"error":"invalid content"}`, false, "invalid content"},
		{"no body", http.StatusInternalServerError, ``, false, "Failed to save content"},
		{"ok without json", http.StatusOK, `<html>saved</html>`, false, "Failed to save content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got content.Document
			var auth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				auth = r.Header.Get("Authorization")
				json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := &Client{URL: srv.URL, Token: "tok"}
			res := c.Save(context.Background(), content.Default())
			if res.Success != tt.success || res.Message != tt.message {
				t.Errorf("result = %+v, want success=%v message=%q", res, tt.success, tt.message)
			}
			if auth != "Bearer tok" {
				t.Errorf("auth header = %q", auth)
			}
			if len(got.Projects) == 0 {
				t.Error("server did not receive the full document")
			}
		})
	}
}

func TestClientSaveNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := (&Client{URL: url}).Save(context.Background(), content.Default())
	if res.Success || res.Message != "Network error: Could not connect to server" {
		t.Errorf("result = %+v", res)
	}
}
