package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/adrenoasm/a2xx/config"
	"github.com/adrenoasm/a2xx/service"
)

// Server represents the HTTP API server
type Server struct {
	cfg         *config.Config
	svc         *service.AssemblerService
	broadcaster *Broadcaster
	mux         *http.ServeMux
	server      *http.Server
	port        int
}

// NewServer creates a new API server backed by cfg. Every assembly request
// builds and assembles its own *ir.Shader, so concurrent requests never
// share arena state.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Server{
		cfg:         cfg,
		svc:         service.NewAssemblerService(cfg),
		broadcaster: NewBroadcaster(),
		mux:         http.NewServeMux(),
		port:        cfg.API.Port,
	}

	// Relay the service's phase events to broadcaster subscribers. Service
	// events carry no run ID, so they are broadcast with an empty RunID.
	go s.broadcaster.Forward("", s.svc.Subscribe())

	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler with CORS middleware applied
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/shader/assemble", s.handleAssemble)
	s.mux.HandleFunc("/api/v1/examples", s.handleExamples)
	s.mux.HandleFunc("/api/v1/examples/", s.handleExampleByName)
	if s.cfg.API.EnableWebSocket {
		s.mux.HandleFunc("/api/v1/ws", s.handleWebSocket)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.broadcaster != nil {
		s.broadcaster.Close()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Broadcaster returns the server's event broadcaster, for tests.
func (s *Server) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// corsMiddleware adds CORS headers restricted to localhost origins.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isAllowedOrigin checks if the origin is from localhost
func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	if strings.HasPrefix(origin, "file://") {
		return true
	}
	if strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1") ||
		strings.HasPrefix(origin, "https://127.0.0.1") {
		return true
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func readJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB limit
	return decoder.Decode(v)
}
