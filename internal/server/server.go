// Package server exposes the check pipeline over HTTP. The surface is
// deliberately small: one POST endpoint that accepts a post URL and
// returns the full report, plus a health probe.
package server

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"claimlens/internal/model"
)

// postURLPattern matches a single X or Twitter status URL
var postURLPattern = regexp.MustCompile(`^https?://(www\.|mobile\.)?(x\.com|twitter\.com)/[A-Za-z0-9_]{1,15}/status(es)?/[0-9]+`)

// ValidPostURL reports whether s looks like an X or Twitter status URL
func ValidPostURL(s string) bool {
	return postURLPattern.MatchString(strings.TrimSpace(s))
}

// CheckService runs one post check
type CheckService interface {
	CheckURL(ctx context.Context, postURL string) (*model.Report, error)
}

// Server is the HTTP front end
type Server struct {
	engine  *gin.Engine
	checker CheckService
}

type checkRequest struct {
	XURL string `json:"x_url"`
}

// errorResponse is the body of every non-200 reply. Verdict and
// KnownUnknowns are only populated for evaluation failures, where the
// caller still deserves a degraded answer shape.
type errorResponse struct {
	Error         string   `json:"error"`
	Verdict       string   `json:"verdict,omitempty"`
	KnownUnknowns []string `json:"known_unknowns,omitempty"`
}

// New creates the server and registers its routes
func New(checker CheckService) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.HandleMethodNotAllowed = true

	s := &Server{engine: engine, checker: checker}

	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	engine.POST("/api/check", s.handleCheck)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return s
}

// Handler returns the underlying handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) handleCheck(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	postURL := strings.TrimSpace(req.XURL)
	if postURL == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "x_url is required"})
		return
	}
	if !postURLPattern.MatchString(postURL) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "x_url must be an X or Twitter status URL"})
		return
	}

	report, err := s.checker.CheckURL(c.Request.Context(), postURL)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:         err.Error(),
			Verdict:       model.VerdictInconclusive,
			KnownUnknowns: []string{"model evaluation unavailable"},
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
