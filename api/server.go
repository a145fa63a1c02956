// Package api provides HTTP ingest capabilities for the finsort pipeline.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/haithamq/finsort/extractor"
	"github.com/haithamq/finsort/extractor/common"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config   Config
	mux      *http.ServeMux
	pipeline *extractor.Pipeline
}

// New creates a new API server backed by the given pipeline
func New(cfg Config, pipeline *extractor.Pipeline) *Server {
	s := &Server{
		config:   cfg,
		mux:      http.NewServeMux(),
		pipeline: pipeline,
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API endpoints
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/ingest", s.handleIngest)
	s.mux.HandleFunc("/banks", s.handleBanks)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sListening on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

// handleIngest accepts one raw notification message and runs it through the
// pipeline. Rejections are 200 responses; only a persistence failure is an
// error status.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte("Method not allowed"))
		return
	}

	var msg common.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if msg.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if msg.Sender == "" || msg.Body == "" {
		writeError(w, http.StatusBadRequest, "sender and body are required")
		return
	}
	switch msg.Source {
	case common.SourceSMS, common.SourceEmail, common.SourceManual:
	case "":
		msg.Source = common.SourceManual
	default:
		writeError(w, http.StatusBadRequest, "source must be sms, email or manual")
		return
	}

	outcome, err := s.pipeline.Process(r.Context(), msg)
	if err != nil {
		log.Printf("%singest failed: %v", s.config.LogPrefix, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}

// handleBanks lists the banks the extractor recognizes
func (s *Server) handleBanks(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, bank := range extractor.Banks() {
		names = append(names, bank.Name)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"banks": names})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
