// Package web exposes the engine's method surface over HTTP JSON, plus an
// SSE stream of orientation change events and Prometheus metrics.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orientationd/internal/engine"
	"orientationd/internal/events"
	"orientationd/internal/orientation"
)

type Server struct {
	engine *engine.Engine
	bcast  *Broadcaster
	router *mux.Router
}

// New wires the engine's event stream into the SSE broadcaster and metrics,
// and builds the route table. Construct once.
func New(e *engine.Engine) *Server {
	s := &Server{engine: e, bcast: NewBroadcaster(), router: mux.NewRouter()}

	e.SetClassifiedHook(func(orientation.Label) { metricSamplesClassified.Inc() })
	e.AddListener(events.TopicScreenOrientationChange, func(ev events.Event) {
		change, ok := ev.(events.ScreenOrientationChange)
		if !ok {
			return
		}
		metricOrientationChanges.WithLabelValues(string(change.Type)).Inc()
		s.bcast.Publish(change)
	})

	r := s.router
	r.HandleFunc("/api/orientation", s.handleOrientation).Methods(http.MethodGet)
	r.HandleFunc("/api/lock", s.handleLock).Methods(http.MethodPost)
	r.HandleFunc("/api/unlock", s.handleUnlock).Methods(http.MethodPost)
	r.HandleFunc("/api/tracking/start", s.handleTrackingStart).Methods(http.MethodPost)
	r.HandleFunc("/api/tracking/stop", s.handleTrackingStop).Methods(http.MethodPost)
	r.HandleFunc("/api/locked", s.handleLocked).Methods(http.MethodGet)
	r.HandleFunc("/api/version", s.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/api/events", s.handleEvents).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}

// writeErr maps engine error kinds onto HTTP status codes.
func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrPlatformOperation):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleOrientation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Type string `json:"type"`
	}{Type: string(s.engine.Orientation())})
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	var req engine.LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metricLockRequests.WithLabelValues("bad_request").Inc()
		http.Error(w, fmt.Sprintf("bad request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := s.engine.Lock(req); err != nil {
		metricLockRequests.WithLabelValues("error").Inc()
		writeErr(w, err)
		return
	}
	metricLockRequests.WithLabelValues("ok").Inc()
	writeJSON(w, okResponse{OK: true})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Unlock(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, okResponse{OK: true})
}

func (s *Server) handleTrackingStart(w http.ResponseWriter, r *http.Request) {
	var req engine.TrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("bad request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := s.engine.StartTracking(req); err != nil {
		writeErr(w, err)
		return
	}
	if s.engine.TrackingActive() {
		metricTrackingStarts.Inc()
	}
	writeJSON(w, okResponse{OK: true})
}

func (s *Server) handleTrackingStop(w http.ResponseWriter, r *http.Request) {
	s.engine.StopTracking()
	writeJSON(w, okResponse{OK: true})
}

func (s *Server) handleLocked(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.IsLocked())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Version string `json:"version"`
	}{Version: engine.Version})
}

// handleEvents streams orientation change events as server-sent events. The
// subscriber gets the most recent event on attach, then every change until
// it disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusNotImplemented)
		return
	}
	id, ch := s.bcast.Subscribe(8)
	defer s.bcast.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			b, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", events.TopicScreenOrientationChange, b)
			flusher.Flush()
		}
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}
