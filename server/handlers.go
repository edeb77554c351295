package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/richinex/waypoint/generation"
	"github.com/richinex/waypoint/resources"
)

var validate = validator.New()

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// TopicRequest is the body of POST /api/resources and /api/explain.
type TopicRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// ResourcesResponse is the body returned by /api/resources.
type ResourcesResponse struct {
	Success   bool             `json:"success"`
	Resources resources.Bundle `json:"resources"`
}

// ExplainResponse is the body returned by /api/explain.
type ExplainResponse struct {
	Success bool                   `json:"success"`
	Topic   string                 `json:"topic"`
	Content resources.TopicContent `json:"content"`
}

// errorResponse is the failure body shared by all endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

const (
	msgInvalidBody   = "Invalid request body"
	msgTopicRequired = "Topic is required"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decode(r, &req); err != nil {
		respondWithError(w, s.logger, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := validate.Struct(&req); err != nil {
		respondWithError(w, s.logger, http.StatusBadRequest, generation.ReasonEmptyTopic)
		return
	}

	// Generation failures are still a completed request.
	res := s.generator.Generate(r.Context(), req.Prompt)
	respondWithJSON(w, s.logger, http.StatusOK, res.Response())
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	topic, ok := s.topic(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, s.logger, http.StatusOK, ResourcesResponse{
		Success:   true,
		Resources: s.resources.Fetch(r.Context(), topic),
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	topic, ok := s.topic(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, s.logger, http.StatusOK, ExplainResponse{
		Success: true,
		Topic:   topic,
		Content: s.explainer.Explain(r.Context(), topic),
	})
}

// topic decodes and validates a TopicRequest, writing the 400 response
// itself when the body is unusable.
func (s *Server) topic(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req TopicRequest
	if err := decode(r, &req); err != nil {
		respondWithError(w, s.logger, http.StatusBadRequest, msgInvalidBody)
		return "", false
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if err := validate.Struct(&req); err != nil {
		respondWithError(w, s.logger, http.StatusBadRequest, msgTopicRequired)
		return "", false
	}
	return req.Topic, true
}

// decode reads a JSON body. An empty body decodes to the zero value so
// that it is reported as missing input rather than malformed JSON.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondWithJSON(w http.ResponseWriter, l *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		l.Error("failed to encode JSON response", zap.Error(err))
	}
}

func respondWithError(w http.ResponseWriter, l *zap.Logger, status int, message string) {
	l.Debug("sending error response", zap.Int("status_code", status), zap.String("message", message))
	respondWithJSON(w, l, status, errorResponse{Success: false, Error: message})
}
