// Package httpx exposes the place-order workflow over HTTP.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/order-taking/internal/coordinator/runlog"
	"github.com/jcmexdev/order-taking/internal/order-service/adapters/dto"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// OrderPlacer runs the place-order workflow.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order domain.UnvalidatedOrder) ([]domain.PlaceOrderEvent, error)
}

// Handler serves order placement and run-log lookups.
type Handler struct {
	placer OrderPlacer
	runLog runlog.Repository
}

func NewHandler(placer OrderPlacer, runLog runlog.Repository) *Handler {
	return &Handler{placer: placer, runLog: runLog}
}

// PlaceOrder decodes the request body as an unvalidated order and runs the
// workflow. Events come back in the order the workflow produced them.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.UnvalidatedOrder
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, dto.PlaceOrderErrorDto{Code: "InvalidJSON", Message: err.Error()})
		return
	}

	events, err := h.placer.PlaceOrder(r.Context(), order)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "place order failed", "order_id", order.OrderID, "error", err)
		}
		writeError(w, status, dto.FromPlaceOrderError(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.PlaceOrderResponse{Events: dto.FromPlaceOrderEvents(events)})
}

// LatestRun returns the most recent run-log entry for an order.
func (h *Handler) LatestRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := h.runLog.GetLatest(r.Context(), id)
	if errors.Is(err, runlog.ErrNotFound) {
		writeError(w, http.StatusNotFound, dto.PlaceOrderErrorDto{Code: "NotFound", Message: "no run for order " + id})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "reading run log failed", "run_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, dto.PlaceOrderErrorDto{Code: dto.CodeInternalError, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(entry))
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps workflow errors to HTTP statuses.
func statusFor(err error) int {
	switch domain.ErrorCode(err) {
	case domain.CodeValidationError:
		return http.StatusBadRequest
	case domain.CodePricingError:
		return http.StatusUnprocessableEntity
	case domain.CodeRemoteServiceError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type RunResponse struct {
	RunID         string    `json:"runId"`
	Status        string    `json:"status"`
	Stage         string    `json:"stage,omitempty"`
	ErrorMessages string    `json:"errorMessages,omitempty"`
	TraceID       string    `json:"traceId,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toRunResponse(e *runlog.Entry) RunResponse {
	return RunResponse{
		RunID:         e.RunID,
		Status:        string(e.Status),
		Stage:         e.Stage,
		ErrorMessages: e.ErrorMessages,
		TraceID:       e.TraceID,
		UpdatedAt:     e.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body dto.PlaceOrderErrorDto) {
	writeJSON(w, status, body)
}
