package ui

import (
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"extfin/internal"
)

// OpsServer serves the operational endpoints (health, pprof) on a separate
// port so they never share a listener with the public API.
type OpsServer struct {
	router *chi.Mux
	logger *internal.Logger
}

// NewOpsServer creates the ops server.
func NewOpsServer(logger *internal.Logger) *OpsServer {
	s := &OpsServer{
		router: chi.NewRouter(),
		logger: logger,
	}
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	s.router.Get("/debug/pprof/", pprof.Index)
	s.router.Get("/debug/pprof/cmdline", pprof.Cmdline)
	s.router.Get("/debug/pprof/profile", pprof.Profile)
	s.router.Get("/debug/pprof/symbol", pprof.Symbol)
	s.router.Get("/debug/pprof/trace", pprof.Trace)
	s.router.Get("/debug/pprof/{name}", func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(chi.URLParam(r, "name")).ServeHTTP(w, r)
	})

	return s
}

// Run starts the ops server on the given port and blocks.
func (s *OpsServer) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	s.logger.Info("ops server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *OpsServer) Handler() http.Handler {
	return s.router
}
