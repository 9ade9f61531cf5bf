// Package server serves the browser front-end: an upload page and a small
// HTTP API that renders uploaded images as ASCII art.
//
// The server holds no per-user state. The page keeps the selected file on
// the client and posts it again whenever the size profile changes.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/config"
	"github.com/wbrown/img2ascii/internal/log"
	"github.com/wbrown/img2ascii/session"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server renders uploads with a shared Renderer.
type Server struct {
	renderer *img2ascii.Renderer
	cfg      config.Server
	preview  img2ascii.PreviewOptions
	profile  img2ascii.SizeProfile
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithPreviewOptions sets the options used by /api/preview.
func WithPreviewOptions(opts img2ascii.PreviewOptions) Option {
	return func(s *Server) {
		s.preview = opts
	}
}

// WithDefaultProfile sets the profile preselected on the page and used
// when a request carries no size.
func WithDefaultProfile(p img2ascii.SizeProfile) Option {
	return func(s *Server) {
		s.profile = p
	}
}

// New creates a Server. A nil renderer selects the defaults.
func New(renderer *img2ascii.Renderer, cfg config.Server, opts ...Option) *Server {
	if renderer == nil {
		renderer = img2ascii.NewRenderer()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = config.Default().Server.MaxUploadBytes
	}
	s := &Server{
		renderer: renderer,
		cfg:      cfg,
		profile:  img2ascii.DefaultProfile,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/download", s.handleDownload)
	mux.HandleFunc("/api/preview", s.handlePreview)
	s.handler = mux
	return s
}

// Handler returns the HTTP handler with every route installed.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("serving", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type indexData struct {
	Profiles       []img2ascii.SizeProfile
	Selected       img2ascii.SizeProfile
	DownloadName   string
	CopiedNotice   string
	FailedNotice   string
	MaxUploadBytes int64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, indexData{
		Profiles:       img2ascii.Profiles,
		Selected:       s.profile,
		DownloadName:   session.DownloadName,
		CopiedNotice:   session.CopiedNotice,
		FailedNotice:   session.CopyFailedNotice,
		MaxUploadBytes: s.cfg.MaxUploadBytes,
	})
	if err != nil {
		log.Error("template failed", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// renderResponse is the body of /api/render.
type renderResponse struct {
	Art     string                `json:"art"`
	Width   int                   `json:"width"`
	Height  int                   `json:"height"`
	Profile img2ascii.SizeProfile `json:"profile"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	art, ok := s.renderUpload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(renderResponse{
		Art:     art.Text,
		Width:   art.Width,
		Height:  art.Height,
		Profile: art.Profile,
	})
	if err != nil {
		log.Warn("failed to write response", "err", err)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	art, ok := s.renderUpload(w, r)
	if !ok {
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Disposition", `attachment; filename="`+session.DownloadName+`"`)
	h.Set("Content-Length", strconv.Itoa(len(art.Text)))
	if _, err := art.WriteTo(w); err != nil {
		log.Warn("failed to write download", "err", err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	art, ok := s.renderUpload(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := img2ascii.RenderPNG(&buf, art, s.preview); err != nil {
		log.Error("preview failed", "err", err)
		http.Error(w, "failed to render preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write preview", "err", err)
	}
}

// renderUpload reads the multipart "image" and "size" fields and renders
// them. On failure it writes the error response and reports false.
func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request) (img2ascii.Art, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return img2ascii.Art{}, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit), http.StatusRequestEntityTooLarge)
			return img2ascii.Art{}, false
		}
		http.Error(w, "expected a multipart form", http.StatusBadRequest)
		return img2ascii.Art{}, false
	}
	defer r.MultipartForm.RemoveAll()

	profile := s.profile
	if size := r.FormValue("size"); size != "" {
		p, err := img2ascii.ParseProfile(size)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return img2ascii.Art{}, false
		}
		profile = p
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no image selected", http.StatusBadRequest)
		return img2ascii.Art{}, false
	}
	defer file.Close()

	src, format, err := imageutil.DecodeLimit(file, s.cfg.MaxPixels)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, imageutil.ErrTooManyPixels) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return img2ascii.Art{}, false
	}

	art, err := s.renderer.Render(src, profile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return img2ascii.Art{}, false
	}
	log.Debug("rendered upload", "name", header.Filename, "format", format,
		"profile", profile, "width", art.Width, "height", art.Height)
	return art, true
}
