// Package server exposes a read-only HTTP status API over the dashboard:
// the module catalog and the current layout.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"practicestudio/internal/grid"
	"practicestudio/internal/jsonutil"
	"practicestudio/internal/layout"
	"practicestudio/internal/module"
)

// DefaultAddr is used by the serve command when no address is configured.
const DefaultAddr = "127.0.0.1:9876"

// LayoutResponse is the body of GET /api/layout.
type LayoutResponse struct {
	Instances []layout.Instance `json:"instances"`
	Frame     grid.Frame        `json:"frame"`
}

// Server serves snapshots published by the dashboard. It never touches the
// instance store; store mutations reach it through the layout.Observer
// methods.
type Server struct {
	catalog []module.Descriptor
	bps     grid.Breakpoints
	log     *zap.Logger

	mu        sync.RWMutex
	instances []layout.Instance
	frame     *grid.Frame

	server   *http.Server
	listener net.Listener
}

// Ensure Server implements layout.Observer.
var _ layout.Observer = (*Server)(nil)

// New creates a server for addr. A nil logger discards logs.
func New(addr string, catalog []module.Descriptor, bps grid.Breakpoints, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		catalog: catalog,
		bps:     bps,
		log:     log.Named("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/layout", s.handleLayout)

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// Handler returns the API handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in a background goroutine.
// Bind errors are returned; serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Info("status server listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("status server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// PublishFrame records the frame the dashboard last rendered.
func (s *Server) PublishFrame(f grid.Frame) {
	f.Placements = append([]grid.Placement(nil), f.Placements...)
	s.mu.Lock()
	s.frame = &f
	s.mu.Unlock()
}

// InstanceAdded implements layout.Observer.
func (s *Server) InstanceAdded(inst layout.Instance) {
	s.mu.Lock()
	s.instances = append(s.instances, inst)
	s.mu.Unlock()
}

// InstanceRemoved implements layout.Observer.
func (s *Server) InstanceRemoved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.instances[:0:0]
	for _, inst := range s.instances {
		if inst.ID != id {
			kept = append(kept, inst)
		}
	}
	s.instances = kept
}

// LayoutReplaced implements layout.Observer.
func (s *Server) LayoutReplaced(instances []layout.Instance) {
	s.mu.Lock()
	s.instances = layout.Clone(instances)
	s.mu.Unlock()
}

// Snapshot returns the current layout. With width > 0 the frame is projected
// at that viewport width; otherwise the last published frame is used, or the
// primary breakpoint when none was published.
func (s *Server) Snapshot(widthPx int) LayoutResponse {
	s.mu.RLock()
	instances := layout.Clone(s.instances)
	published := s.frame
	s.mu.RUnlock()

	var frame grid.Frame
	switch {
	case widthPx > 0:
		frame = grid.Layout(instances, s.bps, widthPx)
	case published != nil:
		frame = *published
	default:
		frame = grid.Layout(instances, s.bps, s.bps.Primary().MinWidth)
	}
	if instances == nil {
		instances = []layout.Instance{}
	}
	if frame.Placements == nil {
		frame.Placements = []grid.Placement{}
	}
	return LayoutResponse{Instances: instances, Frame: frame}
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	s.write(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	s.write(w, http.StatusOK, s.catalog)
}

// handleLayout handles GET /api/layout[?width=N]
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	width := 0
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "width must be a non-negative integer")
			return
		}
		width = n
	}
	s.write(w, http.StatusOK, s.Snapshot(width))
}

func (s *Server) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	if err := jsonutil.WriteJSON(w, status, v); err != nil {
		s.log.Debug("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	if err := jsonutil.WriteError(w, status, msg); err != nil {
		s.log.Debug("write error response", zap.Error(err))
	}
}
