// Package server is the portfolio web server: the rendered page, the content
// API and the admin area.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-cms/internal/config"
	"github.com/Zachkp/portfolio-cms/internal/content"
	"github.com/Zachkp/portfolio-cms/internal/loader"
	"github.com/Zachkp/portfolio-cms/internal/render"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

// Server serves the cached page and keeps it in sync with the content
// manager.
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	store    store.Store
	manager  *content.Manager
	renderer *render.Renderer
	shell    []byte

	mu       sync.RWMutex
	sections render.Sections
	page     []byte
	tagline  string

	taglines *broadcaster
	auth     *adminAuth
}

// New loads the content, renders the page once and registers all routes.
func New(ctx context.Context, cfg *config.Config, st store.Store) (*Server, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	shell, err := os.ReadFile(cfg.ShellPath)
	if err != nil {
		return nil, fmt.Errorf("reading page shell: %w", err)
	}
	auth, err := newAdminAuth(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		store:    st,
		renderer: renderer,
		shell:    shell,
		sections: render.Sections{},
		taglines: newBroadcaster(),
		auth:     auth,
	}
	s.manager = content.NewManager(nil,
		content.WithSaver(store.AsSaver(st)),
		content.OnChange(s.rerender),
	)

	doc, tier := loader.New(
		&loader.StoreSource{Store: st},
		&loader.FileSource{Path: cfg.DataFile},
	).Load(ctx)
	log.Printf("Content loaded from %s", tier.Name)
	s.manager.Replace(doc)

	s.engine = s.routes()
	return s, nil
}

// Handler exposes the gin engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Manager() *content.Manager { return s.manager }

// Run listens on the configured port until the process exits.
func (s *Server) Run() error {
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		if token, err := s.auth.issue(s.cfg.AdminUsername); err == nil {
			log.Printf("Admin token (dev only): %s", token)
		}
	}
	return s.engine.Run(":" + s.cfg.Port)
}

func (s *Server) routes() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(filepath.Join(s.cfg.TemplatesDir, "*"))

	r.Static("/images", s.cfg.ImagesDir)
	r.Static("/static", s.cfg.StaticDir)
	r.StaticFile("/data/content.json", s.cfg.DataFile)

	r.GET("/", func(c *gin.Context) {
		s.mu.RLock()
		page := s.page
		s.mu.RUnlock()
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	r.GET("/typewriter", s.handleTypewriter)

	r.GET("/api/content", func(c *gin.Context) {
		doc, err := s.store.Load(c.Request.Context())
		if errors.Is(err, store.ErrEmpty) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No saved content"})
			return
		}
		if err != nil {
			log.Printf("Error loading content: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	r.POST("/api/content", s.apiAuthMiddleware(), func(c *gin.Context) {
		var doc content.Document
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if err := content.Validate(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := s.store.Save(c.Request.Context(), &doc); err != nil {
			log.Printf("Error saving content: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
			return
		}
		s.manager.Replace(&doc)
		s.pruneRevisions(c.Request.Context())

		log.Printf("Content replaced via API from %s", s.auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Content saved successfully"})
	})

	s.setupAdminRoutes(r)
	return r
}

// rerender is the manager's change hook: it refreshes one section and
// rebuilds the cached page.
func (s *Server) rerender(sec content.Section, doc *content.Document) {
	markup, ok, err := s.renderer.Section(sec, doc)
	if err != nil {
		log.Printf("Error rendering %s: %v", sec, err)
		return
	}

	s.mu.Lock()
	if ok {
		s.sections[sec] = markup
	} else {
		delete(s.sections, sec)
	}
	page, err := render.Assemble(s.shell, s.sections, s.cfg.Minify)
	if err != nil {
		log.Printf("Error assembling page: %v", err)
	} else {
		s.page = page
	}
	var newTagline string
	changed := false
	if sec == content.SectionPersonalInfo {
		if doc.PersonalInfo != nil {
			newTagline = doc.PersonalInfo.Tagline
		}
		changed = newTagline != s.tagline
		s.tagline = newTagline
	}
	s.mu.Unlock()

	if changed {
		s.taglines.publish(newTagline)
	}
}

func (s *Server) currentTagline() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagline
}

func (s *Server) pruneRevisions(ctx context.Context) {
	sq, ok := s.store.(*store.SQLiteStore)
	if !ok || s.cfg.RevisionsKept == 0 {
		return
	}
	if _, err := sq.Prune(ctx, s.cfg.RevisionsKept); err != nil {
		log.Printf("Error pruning revisions: %v", err)
	}
}
