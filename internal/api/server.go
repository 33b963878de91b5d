package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/bryanchriswhite/TableScout/internal/config"
	"github.com/bryanchriswhite/TableScout/internal/discovery"
	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
)

// Discoverer runs discovery passes. *discovery.Finder implements it.
type Discoverer interface {
	All() (*discovery.Result, error)
	ByName(name string) (*table.Identity, error)
	ByTournamentTable(tournament int64, tableNumber int) (*table.Identity, error)
}

// Server represents the HTTP API server
type Server struct {
	router    *mux.Router
	finder    Discoverer
	configMgr *config.Manager
	upgrader  websocket.Upgrader

	mu     sync.Mutex
	http   *http.Server
	closed bool
}

// TablesResponse is the body of GET /api/tables
type TablesResponse struct {
	Tables     map[string]table.Identity `json:"tables"`
	Collisions []discovery.Collision     `json:"collisions"`
	Errors     []string                  `json:"errors"`
}

// NewServer creates a new API server
func NewServer(finder Discoverer, configMgr *config.Manager) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		finder:    finder,
		configMgr: configMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Overlays are served from local files and browser sources.
				return true
			},
		},
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Discovery
	api.HandleFunc("/tables", s.handleGetTables).Methods("GET")
	api.HandleFunc("/tables/{name}", s.handleGetTable).Methods("GET")
	api.HandleFunc("/tournaments/{tournament:[0-9]+}/tables/{table:[0-9]+}", s.handleGetTournamentTable).Methods("GET")
	api.HandleFunc("/ws", s.handleWebSocket)

	// Configuration
	api.HandleFunc("/sites", s.handleGetSites).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the HTTP handler with CORS applied
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// Start starts the HTTP server and blocks until it stops. It returns nil
// without listening when Shutdown has already been called.
func (s *Server) Start(port int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	s.http = srv
	s.mu.Unlock()

	logger.WithComponent("api").Info().Int("port", port).Msg("Starting server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server. A later Start returns immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.http
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// enableCORS adds CORS headers
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HTTP Handlers

func (s *Server) handleGetTables(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tables()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id, err := s.finder.ByName(mux.Vars(r)["name"])
	s.writeIdentity(w, id, err)
}

func (s *Server) handleGetTournamentTable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tournament, err := strconv.ParseInt(vars["tournament"], 10, 64)
	if err != nil {
		http.Error(w, "invalid tournament number", http.StatusBadRequest)
		return
	}
	tableNumber, err := strconv.Atoi(vars["table"])
	if err != nil {
		http.Error(w, "invalid table number", http.StatusBadRequest)
		return
	}

	id, err := s.finder.ByTournamentTable(tournament, tableNumber)
	s.writeIdentity(w, id, err)
}

func (s *Server) writeIdentity(w http.ResponseWriter, id *table.Identity, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if id == nil {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}
	writeJSON(w, id)
}

func (s *Server) handleGetSites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.configMgr.Get().Sites)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

// Version is reported by the health endpoint
var Version = "0.1.0"

// tables runs one full pass and flattens decode failures into messages.
func (s *Server) tables() (*TablesResponse, error) {
	res, err := s.finder.All()
	if err != nil {
		logger.WithComponent("api").Error().Err(err).Msg("Discovery failed")
		return nil, err
	}

	resp := &TablesResponse{
		Tables:     res.Tables,
		Collisions: res.Collisions,
		Errors:     []string{},
	}
	if resp.Collisions == nil {
		resp.Collisions = []discovery.Collision{}
	}

	var merr *multierror.Error
	switch {
	case errors.As(res.Err, &merr):
		for _, e := range merr.Errors {
			resp.Errors = append(resp.Errors, e.Error())
		}
	case res.Err != nil:
		resp.Errors = append(resp.Errors, res.Err.Error())
	}
	return resp, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithComponent("api").Debug().Err(err).Msg("Failed to write response")
	}
}
