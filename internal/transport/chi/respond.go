package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelStatus maps a domain sentinel to an HTTP status and error code.
type sentinelStatus struct {
	sentinel error
	status   int
	code     string
}

var sentinelStatuses = []sentinelStatus{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrVectorDimMismatch, http.StatusBadRequest, "vector_dim_mismatch"},
	{domain.ErrNotReady, http.StatusServiceUnavailable, "not_ready"},
	{domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"},
	{domain.ErrAnswerProviderError, http.StatusBadGateway, "answer_provider_error"},
}

// handleDomainError writes the response for a usecase error. Sentinel
// matches keep their message; anything else is an opaque 500.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, m := range sentinelStatuses {
		if errors.Is(err, m.sentinel) {
			s.logger.Warn("domain error", zap.Error(err))
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
