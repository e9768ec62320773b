package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic exposes the built board frontend next to the API. Unknown
// paths outside /api/ fall back to index.html so the client-side router
// can resolve them; API misses stay JSON.
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		s.logger.Warn("no static directory configured, serving the API only")
		return
	}
	if info, err := os.Stat(s.staticDir); err != nil || !info.IsDir() {
		s.logger.Warn("static directory unavailable", "path", s.staticDir, "error", err)
		return
	}

	index := filepath.Join(s.staticDir, "index.html")
	if !fileExists(index) {
		s.logger.Warn("frontend index missing", "path", index)
		return
	}

	serveIndex := func(c *gin.Context) { c.File(index) }
	s.engine.GET("/", serveIndex)
	s.engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		serveIndex(c)
	})

	for _, dir := range []string{"assets", "static"} {
		full := filepath.Join(s.staticDir, dir)
		if info, err := os.Stat(full); err == nil && info.IsDir() {
			s.engine.StaticFS("/"+dir, gin.Dir(full, false))
		}
	}

	if favicon := filepath.Join(s.staticDir, "favicon.ico"); fileExists(favicon) {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
