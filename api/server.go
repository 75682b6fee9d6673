// Package api serves the animation catalogue over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/matt-g-everett/animatable/definitions"
	"github.com/matt-g-everett/animatable/keyframe"
	"github.com/matt-g-everett/animatable/logger"
	"github.com/matt-g-everett/animatable/registry"
	"github.com/matt-g-everett/animatable/style"
)

const maxSamples = 240

// Options configures a Server.
type Options struct {
	// StaticDir, when set, is served at / for a browser client.
	StaticDir string
	Logger    *logger.Logger
}

// Server exposes the registered animations.
type Server struct {
	reg *registry.Registry
	log *logger.Logger
	mux *http.ServeMux
}

// Catalogue is the response of GET /animations.
type Catalogue struct {
	Groups []definitions.Group `json:"groups"`
	Names  []string            `json:"names"`
}

// Frame is one sampled point of an animation.
type Frame struct {
	Progress float64     `json:"progress"`
	Style    style.Style `json:"style"`
}

// Detail is the response of GET /animations/{name}.
type Detail struct {
	Name       string              `json:"name"`
	Properties []string            `json:"properties"`
	Animation  *keyframe.Animation `json:"animation"`
	Frames     []Frame             `json:"frames,omitempty"`
}

// NewServer creates a server over reg.
func NewServer(reg *registry.Registry, opts Options) *Server {
	s := &Server{reg: reg, log: opts.Logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /animations", s.handleList)
	s.mux.HandleFunc("GET /animations/{name}", s.handleGet)
	if opts.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		s.log.With("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Catalogue{Groups: definitions.Groups(), Names: s.reg.Names()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	anim, err := s.reg.Get(name)
	if errors.Is(err, registry.ErrUnknownAnimation) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	detail := Detail{Name: name, Properties: anim.Properties(), Animation: anim}
	if raw := r.URL.Query().Get("samples"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSamples {
			s.writeError(w, http.StatusBadRequest, errors.New("samples must be between 1 and "+strconv.Itoa(maxSamples)))
			return
		}
		for i := 0; i <= n; i++ {
			p := float64(i) / float64(n)
			detail.Frames = append(detail.Frames, Frame{Progress: p, Style: style.Wrap(anim.Sample(p))})
		}
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(err, "encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.With("status", status).Debug(err.Error())
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
