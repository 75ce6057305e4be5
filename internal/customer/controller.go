package customer

import (
	"encoding/json"
	"net/http"

	"rentstock/internal/validation"

	apperrors "rentstock/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	svc    *Service
	logger *zap.Logger
}

func NewController(svc *Service, logger *zap.Logger) *Controller {
	return &Controller{
		svc:    svc,
		logger: logger,
	}
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := c.svc.List(r.Context())
	if err != nil {
		c.writeError(w, uuid.NewString(), err)
		return
	}
	c.writeJSON(w, http.StatusOK, customers)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := validation.Struct(req); err != nil {
		c.writeError(w, traceID, err)
		return
	}

	created, err := c.svc.Create(r.Context(), req.toSpec())
	if err != nil {
		c.writeError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, created)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))
	customerID := chi.URLParam(r, "customerId")

	var req UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := validation.Struct(req); err != nil {
		c.writeError(w, traceID, err)
		return
	}

	updated, err := c.svc.Update(r.Context(), customerID, req.toSpec())
	if err != nil {
		c.writeError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, updated)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	customerID := chi.URLParam(r, "customerId")

	if err := c.svc.Delete(r.Context(), customerID); err != nil {
		c.writeError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}

type errorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func (c *Controller) writeError(w http.ResponseWriter, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, errorResponse{
			TraceID: traceID, Error: "VALIDATION_ERROR", Message: ve.Message, Details: ve.Details,
		})
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, errorResponse{
			TraceID: traceID, Error: "NOT_FOUND", Message: err.Error(),
		})
		return
	}
	if _, ok := apperrors.IsStorageError(err); ok {
		c.logger.Error("storage failure", zap.String("traceId", traceID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, errorResponse{
			TraceID: traceID, Error: "STORAGE_FAILURE", Message: "a storage error occurred, the request is safe to retry",
		})
		return
	}

	c.logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{
		TraceID: traceID, Error: "INTERNAL_ERROR", Message: "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
