// Package server exposes a backend.Backend over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/studiowebux/launcher/internal/backend"
	"go.uber.org/zap"
)

// maxBodySize bounds a request body
const maxBodySize = 16 << 20

// Server routes invoke calls to a backend
type Server struct {
	backend backend.Backend
	logger  *zap.Logger
	router  *mux.Router
}

type handlerFunc func(ctx context.Context, body json.RawMessage) (interface{}, error)

// New builds the router for b
func New(b backend.Backend, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{backend: b, logger: logger, router: mux.NewRouter()}

	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	handlers := map[string]map[string]handlerFunc{
		backend.PluginInstance: {
			backend.CmdCreateInstance:     s.createInstance,
			backend.CmdGetInstance:        s.getInstance,
			backend.CmdGetInstances:       s.getInstances,
			backend.CmdRemoveInstance:     s.removeInstance,
			backend.CmdRenameInstance:     s.renameInstance,
			backend.CmdUpdateInstanceIcon: s.updateInstanceIcon,
		},
		backend.PluginAccount: {
			backend.CmdAuthenticate: s.authenticate,
			backend.CmdGetAll:       s.getAllAccounts,
			backend.CmdGetActive:    s.getActiveAccount,
			backend.CmdSetActive:    s.setActiveAccount,
			backend.CmdRemove:       s.removeAccount,
		},
	}

	s.router.HandleFunc("/invoke/{plugin}/{command}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		handler, ok := handlers[vars["plugin"]][vars["command"]]
		if !ok {
			writeJSON(w, http.StatusNotFound, backend.ErrorBody{Error: "unknown command " + vars["plugin"] + "/" + vars["command"]})
			return
		}
		s.invoke(w, r, handler)
	}).Methods("POST")

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("backend server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request, handler handlerFunc) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, backend.ErrorBody{Error: "failed to read request body"})
		return
	}
	body := json.RawMessage(data)
	if len(bytes.TrimSpace(body)) == 0 {
		body = json.RawMessage("{}")
	}

	result, err := handler(r.Context(), body)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("invoke failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		writeJSON(w, status, backend.ErrorBody{Error: backend.Message(err)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, backend.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func decode(body json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return backend.Errorf(backend.ErrInvalid, "invalid arguments: %v", err)
	}
	return nil
}
