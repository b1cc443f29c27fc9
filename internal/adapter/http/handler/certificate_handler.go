package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/metrics"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// CertificateService defines the behavior needed by CertificateHandler.
type CertificateService interface {
	Attach(ctx context.Context, input usecase.AttachCertificateInput) (*domain.Certificate, error)
	Update(ctx context.Context, clientID, certificateID int64, input usecase.UpdateCertificateInput) (*domain.Certificate, error)
	Delete(ctx context.Context, clientID, certificateID int64) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Certificate, error)
	CheckExpiring(ctx context.Context, daysAhead int) ([]usecase.ExpiringCertificate, error)
}

// CertificateHandler handles certificate-related HTTP requests.
type CertificateHandler struct {
	certificateUC CertificateService
	metrics       *metrics.Metrics
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(certificateUC CertificateService, m *metrics.Metrics) *CertificateHandler {
	return &CertificateHandler{certificateUC: certificateUC, metrics: m}
}

// Create attaches a certificate to a client.
func (h *CertificateHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	var req dto.AttachCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	certificate, err := h.certificateUC.Attach(r.Context(), req.ToUseCaseInput(clientID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to attach certificate", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CertificateFromDomain(certificate))
}

// Update applies a partial update to a certificate.
func (h *CertificateHandler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	certificateID, err := parseIDParam(r, "certificateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid certificate ID", "")
		return
	}

	var req dto.UpdateCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	certificate, err := h.certificateUC.Update(r.Context(), clientID, certificateID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update certificate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CertificateFromDomain(certificate))
}

// Delete removes a certificate of a client.
func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	certificateID, err := parseIDParam(r, "certificateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid certificate ID", "")
		return
	}

	if err := h.certificateUC.Delete(r.Context(), clientID, certificateID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete certificate", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists the certificates of one client.
func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	certificates, err := h.certificateUC.ListByClient(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list certificates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CertificatesFromDomain(certificates))
}

// ListExpiring lists certificates across all clients expiring within the
// requested window.
func (h *CertificateHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	days := parseIntQuery(r, "days", domain.DefaultExpiryThresholdDays)

	expiring, err := h.certificateUC.CheckExpiring(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check expiring certificates", err.Error())
		return
	}

	h.metrics.CertificatesExpiring.Set(float64(len(expiring)))
	writeJSON(w, http.StatusOK, dto.ExpiringCertificatesFromUseCase(expiring))
}
