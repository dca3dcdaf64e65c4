package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-cv2pdf"
	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/content"
	"github.com/alnah/go-cv2pdf/internal/metrics"
	"github.com/alnah/go-cv2pdf/internal/theme"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	mimePDF           = "application/pdf"
)

// service is the part of cv2pdf.Exporter the HTTP server drives.
type service interface {
	Export(ctx context.Context, in cv2pdf.Input) (*cv2pdf.Result, error)
	Preview(ctx context.Context, in cv2pdf.Input) (string, error)
}

// Compile-time interface implementation check.
var _ service = (*cv2pdf.Exporter)(nil)

// exportRequest is the body of POST /v1/exports and /v1/previews.
type exportRequest struct {
	Content  *content.Content `json:"content" binding:"required"`
	Theme    *theme.Config    `json:"theme"`
	PhotoID  string           `json:"photo_id"`
	Filename string           `json:"filename"`
}

func (r exportRequest) input() cv2pdf.Input {
	return cv2pdf.Input{Content: r.Content, Theme: r.Theme, PhotoID: r.PhotoID, Filename: r.Filename}
}

// server exposes one shared exporter over HTTP. sem bounds concurrent
// exports so a burst cannot open unbounded browser tabs.
type server struct {
	svc       service
	sem       chan struct{}
	bodyLimit int64
	logger    *slog.Logger
}

func newServer(svc service, workers int, bodyLimit int64, logger *slog.Logger) *server {
	return &server{
		svc:       svc,
		sem:       make(chan struct{}, cv2pdf.ResolveWorkers(workers)),
		bodyLimit: bodyLimit,
		logger:    logger,
	}
}

// router builds the gin engine.
func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.GinMiddleware(), s.limitBody)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/exports", s.createExport)
	v1.POST("/previews", s.createPreview)
	return r
}

func (s *server) limitBody(c *gin.Context) {
	if s.bodyLimit > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.bodyLimit)
	}
	c.Next()
}

// createExport renders a CV. The PDF is streamed back when the client
// accepts application/pdf; otherwise the stored result is described as JSON.
func (s *server) createExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		respondError(c, http.StatusServiceUnavailable, "request cancelled while queued")
		return
	}

	res, err := s.svc.Export(ctx, req.input())
	if err != nil {
		s.fail(c, "export failed", err)
		return
	}

	if c.NegotiateFormat(gin.MIMEJSON, mimePDF) == mimePDF {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
		c.Data(http.StatusOK, mimePDF, res.PDF)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// createPreview returns the single-page HTML preview.
func (s *server) createPreview(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	html, err := s.svc.Preview(c.Request.Context(), req.input())
	if err != nil {
		s.fail(c, "preview failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *server) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, slog.String("path", c.FullPath()), slog.Any("error", err))
	}
	respondError(c, status, err.Error())
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, cv2pdf.ErrNilContent),
		errors.Is(err, cv2pdf.ErrInvalidTheme),
		errors.Is(err, cv2pdf.ErrInvalidFilename):
		return http.StatusBadRequest
	case errors.Is(err, cv2pdf.ErrEmptyContent),
		errors.Is(err, cv2pdf.ErrPhotoResolve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, cv2pdf.ErrBrowserConnect):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// runServe handles `cv2pdf serve`. It blocks until ctx is cancelled, then
// drains in-flight requests.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	applyRenderFlags(flags.render, cfg)
	applyAssetFlags(flags.assets, cfg)
	applyServeFlags(flags, cfg)

	logger := newLogger(env.Stderr, flags.common, slog.LevelInfo)
	exp, err := newExporter(ctx, cfg, env, logger)
	if err != nil {
		return err
	}
	defer func() { _ = exp.Close() }()

	if !flags.common.verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	s := newServer(exp, cfg.Server.Workers, int64(cfg.Server.BodyLimitMB)<<20, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr), slog.Int("workers", cap(s.sem)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func applyServeFlags(f *serveFlags, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.workers > 0 {
		cfg.Server.Workers = f.workers
	}
	if f.outputDir != "" {
		cfg.Output.Dir = f.outputDir
	}
}
