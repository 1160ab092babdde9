package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/agent"
	"github.com/amityadav/scout/internal/config"
)

// searchRequest is the JSON body of POST /search. Pointer fields distinguish
// "absent" from a deliberate zero so defaults can be applied.
type searchRequest struct {
	Query              string   `json:"query"`
	NumResults         int      `json:"num_results"`
	MaxTokens          int      `json:"max_tokens"`
	SummaryLength      int      `json:"summary_length"`
	Model              string   `json:"model"`
	Temperature        *float64 `json:"temperature"`
	ComprehensionGrade int      `json:"comprehension_grade"`
	SearchType         string   `json:"search_type"`
	Humanize           *bool    `json:"humanize"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the pipeline over a small JSON API.
type Server struct {
	cfg   config.Config
	agent *agent.Agent
	log   zerolog.Logger
}

// New creates the HTTP server.
func New(cfg config.Config, a *agent.Agent, log zerolog.Logger) *Server {
	return &Server{
		cfg:   cfg,
		agent: a,
		log:   log.With().Str("component", "server").Logger(),
	}
}

// Handler builds the full HTTP handler with CORS and panic recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	return s.recoveryHandler(s.corsHandler(mux.ServeHTTP))
}

// Addr returns the listen address from config.
func (s *Server) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Port)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid API key"})
		return
	}

	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	req := agent.Request{
		Query:              body.Query,
		NumResults:         body.NumResults,
		MaxTokens:          body.MaxTokens,
		SummaryLength:      body.SummaryLength,
		Model:              body.Model,
		ComprehensionGrade: body.ComprehensionGrade,
		SearchType:         body.SearchType,
		Humanize:           s.cfg.Humanize,
	}
	if body.Temperature != nil {
		req.Temperature = *body.Temperature
	} else {
		req.Temperature = s.cfg.Temperature
	}
	if body.Humanize != nil {
		req.Humanize = *body.Humanize
	}

	results := s.agent.ProcessRequest(r.Context(), req)
	writeJSON(w, http.StatusOK, results)
}

// authorized accepts a Bearer token matching any configured provider key.
func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return false
	}
	return token == s.cfg.GroqAPIKey || token == s.cfg.GeminiAPIKey
}

func (s *Server) corsHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) recoveryHandler(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error().Interface("panic", err).Bytes("stack", debug.Stack()).Msg("panic recovered")
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
