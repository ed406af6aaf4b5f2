package server

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Zachkp/portfolio-cms/internal/config"
	"github.com/Zachkp/portfolio-cms/internal/content"
	"github.com/Zachkp/portfolio-cms/internal/store"
)

const (
	adminCookie   = "admin_token"
	adminTokenTTL = 24 * time.Hour
)

type adminAuth struct {
	username string
	password string
	secret   []byte
	salt     string
}

func newAdminAuth(cfg *config.Config) (*adminAuth, error) {
	secret := cfg.AdminSecret
	if secret == "" {
		// Tokens then only survive until restart.
		var err error
		if secret, err = randomHex(); err != nil {
			return nil, fmt.Errorf("generating admin secret: %w", err)
		}
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}
	if gin.Mode() == gin.DebugMode && cfg.AdminPassword == config.Default().AdminPassword {
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return &adminAuth{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		secret:   []byte(secret),
		salt:     salt,
	}, nil
}

func randomHex() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssueToken signs an admin token that the content API accepts as a Bearer
// credential.
func IssueToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (a *adminAuth) issue(username string) (string, error) {
	return IssueToken(string(a.secret), username, adminTokenTTL)
}

func (a *adminAuth) valid(token string) bool {
	if token == "" {
		return false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && parsed.Valid && claims.Subject == a.username
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// hashIP keeps client addresses out of the logs.
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(hash[:])[:16]
}

// requestToken reads the admin cookie, then a Bearer header.
func requestToken(c *gin.Context) string {
	if token, err := c.Cookie(adminCookie); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// adminAuthMiddleware guards HTML pages and redirects to the login form.
func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.auth.valid(requestToken(c)) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// apiAuthMiddleware guards JSON endpoints.
func (s *Server) apiAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.auth.valid(requestToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if !s.auth.checkCredentials(username, password) {
			log.Printf("Failed admin login attempt from %s", s.auth.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		token, err := s.auth.issue(username)
		if err != nil {
			log.Printf("Error issuing admin token: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to sign in",
			})
			return
		}
		c.SetCookie(adminCookie, token, int(adminTokenTTL.Seconds()), "/", "", false, true)
		log.Printf("Admin login successful from %s", s.auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/", "", false, true)
		log.Printf("Admin logout from %s", s.auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		data := gin.H{
			"doc":      s.manager.Snapshot(),
			"sections": content.Sections,
		}
		if sq, ok := s.store.(*store.SQLiteStore); ok {
			revs, err := sq.Revisions(c.Request.Context(), 20)
			if err != nil {
				log.Printf("Error loading revisions: %v", err)
				c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
					"error": "Failed to load revisions",
				})
				return
			}
			data["revisions"] = revs
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", data)
	})

	// Content export, for backups.
	adminGroup.GET("/export", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=content.json")
		log.Printf("Content exported by %s", s.auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, s.manager.Snapshot())
	})

	api := r.Group("/admin/api")
	api.Use(s.apiAuthMiddleware())

	// The in-memory draft, which may differ from /api/content until saved.
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.manager.Snapshot())
	})

	api.POST("/save", func(c *gin.Context) {
		result := s.manager.Save(c.Request.Context())
		if !result.Success {
			log.Printf("Failed to save content: %s", result.Message)
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		s.pruneRevisions(c.Request.Context())
		log.Printf("Content saved by %s", s.auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, result)
	})

	api.POST("/:section", func(c *gin.Context) {
		sec, ok := sectionParam(c)
		if !ok {
			return
		}
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}
		item, err := s.manager.AddItem(sec, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	})

	api.PATCH("/:section/:id", func(c *gin.Context) {
		sec, ok := sectionParam(c)
		if !ok {
			return
		}
		var patch content.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		item, err := s.manager.UpdateItem(sec, c.Param("id"), patch)
		switch {
		case errors.Is(err, content.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case errors.Is(err, content.ErrUnknownSection):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, item)
		}
	})

	api.DELETE("/:section/:id", func(c *gin.Context) {
		sec, ok := sectionParam(c)
		if !ok {
			return
		}
		removed, err := s.manager.DeleteItem(sec, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		log.Printf("%s %s deleted by admin from %s", sec, c.Param("id"), s.auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	})
}

func sectionParam(c *gin.Context) (content.Section, bool) {
	sec, err := content.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return "", false
	}
	return sec, true
}
