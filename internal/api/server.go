// Package api exposes the task service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task-list/internal/logging"
	"task-list/internal/services"
	"task-list/internal/validation"
)

// Options configures the HTTP server
type Options struct {
	// AllowedOrigin is the browser origin allowed by CORS
	AllowedOrigin   string
	ShutdownTimeout time.Duration
	Validator       *validation.TaskValidator
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		AllowedOrigin:   "http://localhost:3000",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the task list HTTP server
type Server struct {
	tasks     services.TaskService
	validator *validation.TaskValidator
	logger    *log.Logger
	opts      Options
	router    *gin.Engine
}

// NewServer creates a new HTTP server around the task service
func NewServer(tasks services.TaskService, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultOptions().ShutdownTimeout
	}
	validator := opts.Validator
	if validator == nil {
		validator = validation.NewTaskValidator()
	}

	router := gin.New()

	s := &Server{
		tasks:     tasks,
		validator: validator,
		logger:    logger,
		opts:      opts,
		router:    router,
	}

	router.Use(requestID(), requestLogger(logger), gin.Recovery())
	if opts.AllowedOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins: []string{opts.AllowedOrigin},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{"Content-Type"},
		}))
	}

	router.NoRoute(s.handleNoRoute)

	tasksGroup := router.Group("/tasks")
	{
		tasksGroup.GET("", s.handleListTasks)
		tasksGroup.POST("", s.handleCreateTask)
		tasksGroup.PATCH("/:id/complete", s.handleCompleteTask)
	}

	return s
}

// Handler returns the router for use with httptest or a custom http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
