package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"QuoteBoard/internal/model"
)

const (
	tableTitle      = "港股实时行情"
	plainTextHeader = "text/plain; charset=utf-8"
)

// plainAgents are User-Agent fragments of clients that get raw ANSI text.
var plainAgents = []string{"curl", "wget", "fetch", "httpie", "python-requests", "lwp-request"}

// Renderer produces the terminal text served by the routes.
type Renderer interface {
	RenderChart(ctx context.Context, code, periodKey string) string
	RenderTable(ctx context.Context, top int) (string, error)
}

// Server is the HTTP front end.
type Server struct {
	Engine     *gin.Engine
	Renderer   Renderer
	DefaultTop int
}

// NewServer builds the gin engine and its routes.
func NewServer(r Renderer, defaultTop int) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{Engine: engine, Renderer: r, DefaultTop: defaultTop}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Engine.GET("/", s.table)
	s.Engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.Engine.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	s.Engine.GET("/:topic", s.chart)
}

// HTTPServer wraps the engine for addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

func (s *Server) table(c *gin.Context) {
	top := s.DefaultTop
	if v := c.Query("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			top = n
		}
	}

	ansi, err := s.Renderer.RenderTable(c.Request.Context(), top)
	if err != nil {
		log.Error().Int("top", top).Err(err).Msg("render table")
		c.String(http.StatusServiceUnavailable, "获取行情数据失败\n")
		return
	}
	s.respond(c, ansi, tableTitle)
}

func (s *Server) chart(c *gin.Context) {
	code, period := ParseTopic(c.Param("topic"))
	ansi := s.Renderer.RenderChart(c.Request.Context(), code, period)
	s.respond(c, ansi, strings.ToUpper(code)+" 港股行情")
}

func (s *Server) respond(c *gin.Context, ansi, title string) {
	if IsPlainClient(c.GetHeader("User-Agent")) {
		c.Data(http.StatusOK, plainTextHeader, []byte(ansi))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(Page(title, ansi)))
}

// ParseTopic splits "code[@period]". The period defaults to one month.
func ParseTopic(topic string) (code, period string) {
	code, period, found := strings.Cut(topic, "@")
	if !found {
		period = model.DefaultPeriodKey
	}
	return strings.TrimSpace(code), strings.TrimSpace(period)
}

// IsPlainClient reports whether ua belongs to a terminal HTTP client.
func IsPlainClient(ua string) bool {
	ua = strings.ToLower(ua)
	for _, a := range plainAgents {
		if strings.Contains(ua, a) {
			return true
		}
	}
	return false
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
