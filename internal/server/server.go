// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"faq-service/internal/common/errors"
	"faq-service/internal/common/logger"
	"faq-service/internal/models"
	"faq-service/pkg/schema"
)

// QueryPipeline resolves one question into a response payload.
type QueryPipeline interface {
	Answer(ctx context.Context, question string) models.ComposedAnswer
}

// Server is the HTTP boundary: request-shape validation, the ask endpoint,
// and a health probe. Cross-origin access is allowed from any origin.
type Server struct {
	pipeline QueryPipeline
	errors   *errors.HTTPHandler
	logger   logger.Logger
	handler  http.Handler
}

func New(pipeline QueryPipeline, log logger.Logger) *Server {
	s := &Server{
		pipeline: pipeline,
		errors:   errors.NewHTTPHandler(log),
		logger:   log,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/ask", s.handleAsk).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		OptionsSuccessStatus: http.StatusOK,
	})

	s.handler = s.recoverPanics(c.Handler(router))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errors.WriteError(w, errors.NewRequestInvalidError("unreadable request body"))
		return
	}

	if err := schema.ValidateAskRequest(body); err != nil {
		s.errors.WriteError(w, errors.NewRequestInvalidError(err.Error()))
		return
	}

	var req models.AskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.WriteError(w, errors.NewRequestInvalidError("malformed JSON body"))
		return
	}

	answer := s.pipeline.Answer(r.Context(), req.Question)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(answer); err != nil {
		s.logger.WithError(err).Error("failed to encode response", nil)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.errors.WriteError(w, errors.NewMethodNotAllowedError(r.Method))
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic while handling request", map[string]interface{}{
					"panic": rec,
					"path":  r.URL.Path,
				})
				s.errors.WriteError(w, errors.NewInternalError(fmt.Errorf("panic: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
