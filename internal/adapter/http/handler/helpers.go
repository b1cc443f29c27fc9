package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrMovementNotFound),
		errors.Is(err, domain.ErrCertificateNotFound),
		errors.Is(err, domain.ErrClientTaxNotFound),
		errors.Is(err, domain.ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrClientHasBalance),
		errors.Is(err, domain.ErrClientHasMovements):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateDocumento),
		errors.Is(err, domain.ErrDuplicateCodigoInterno),
		errors.Is(err, domain.ErrDuplicateClientTax),
		errors.Is(err, domain.ErrDuplicateReceiptNumber):
		return http.StatusConflict
	case errors.Is(err, domain.ErrZeroMovement),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrTooManyDecimals),
		errors.Is(err, domain.ErrInvalidConcepto),
		errors.Is(err, domain.ErrInvalidDetalle),
		errors.Is(err, domain.ErrInvalidCUIT),
		errors.Is(err, domain.ErrInvalidDocumento):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseIDParam parses a numeric URL parameter.
func parseIDParam(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
