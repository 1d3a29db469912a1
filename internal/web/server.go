// Package web serves the outline over HTTP: an HTML board, a JSON API and
// a websocket channel announcing changes.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/whiteboard/internal/usecase"
)

const (
	maxBodySize     = 1 << 20 // 1MB
	shutdownTimeout = 5 * time.Second
)

// Deps holds what the server needs. Hub and Schema are optional.
// Fields are ordered to minimize memory padding.
type Deps struct {
	ShowOutline   *usecase.ShowOutline
	RenderOutline *usecase.RenderOutline
	UpdateOutline *usecase.UpdateOutline
	ReplaceText   *usecase.ReplaceOutline
	ListTasks     *usecase.ListTasks
	StatusBoard   *usecase.StatusBoard
	SetStatus     *usecase.SetStatus
	AddTask       *usecase.AddTask
	Hub           http.Handler // Websocket endpoint
	Logger        *slog.Logger
	TemplatesDir  string // Overrides the built-in templates when set
	Schema        []byte // Patch document schema served at /api/schema
}

// Server is the whiteboard web server.
type Server struct {
	deps   Deps
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a server and registers its routes.
func NewServer(deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tmpl, err := loadTemplates(deps.TemplatesDir)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), webSource())
	router.SetHTMLTemplate(tmpl)

	s := &Server{deps: deps, router: router, logger: logger}

	// Web routes
	router.GET("/", s.handleIndex)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/outline", s.handleGetOutline)
		api.PUT("/outline", s.handlePatchOutline)
		api.GET("/outline.txt", s.handleOutlineText)
		api.PUT("/outline.txt", s.handleReplaceText)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleAddTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handlePatchTask)
		api.PUT("/tasks/:id/status", s.handleSetStatus)
		api.GET("/board", s.handleBoard)
		api.GET("/board/:id", s.handleBoard)
		api.GET("/schema", s.handleSchema)
	}

	if deps.Hub != nil {
		router.GET("/ws", gin.WrapH(deps.Hub))
	}

	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		<-errCh
		return nil
	}
}

func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())
	if dir == "" {
		return template.Must(tmpl.ParseFS(templateFS, "templates/*.html")), nil
	}
	parsed, err := tmpl.ParseGlob(dir + "/*.html")
	if err != nil {
		return nil, fmt.Errorf("load templates from %s: %w", dir, err)
	}
	return parsed, nil
}
