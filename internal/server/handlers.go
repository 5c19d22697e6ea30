package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sozercan/insight-agent/apimodels"
	"github.com/sozercan/insight-agent/internal/validation"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock_analyzer.go -package=mocks
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*apimodels.AnalyzeResponse, error)
}

var (
	errInvalidBody  = errors.New("invalid request body")
	errTrailingData = errors.New("unexpected data after JSON object")
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	var req apimodels.AnalyzeRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidBody, err))
		return
	}

	if err := validation.ValidateStruct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("analyzing text: %w", err))
		return
	}

	writeJSON(s.logger, w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, apimodels.HealthResponse{Status: "ok"})
}

// decodeJSON reads exactly one JSON value from r into dst.
func decodeJSON(r io.Reader, dst interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("body must not be empty")
		}
		return err
	}

	err := dec.Decode(&struct{}{})
	if errors.Is(err, io.EOF) {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return errTrailingData
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
		message = fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit)
	case errors.Is(err, validation.ErrInvalidInput), errors.Is(err, errInvalidBody):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		message = "request timed out"
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "Analysis request failed", "error", err)
	} else {
		s.logger.DebugContext(r.Context(), "Rejected analysis request", "status", status, "error", err)
	}

	writeJSON(s.logger, w, status, apimodels.ErrorResponse{Error: message})
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
