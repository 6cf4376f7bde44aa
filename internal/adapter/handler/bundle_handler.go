package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
	"github.com/kioskpos/bundle_service/internal/core/services"
)

type BundleHandler struct {
	lifecycle *services.LifecycleService
}

func NewBundleHandler(lifecycle *services.LifecycleService) *BundleHandler {
	return &BundleHandler{lifecycle: lifecycle}
}

type applyEventRequest struct {
	EventType string     `json:"event_type"`
	EventDate *time.Time `json:"event_date,omitempty"`
}

func (h *BundleHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundleID, ok := parseBundleID(w, r)
	if !ok {
		return
	}

	bundle, err := h.lifecycle.GetBundle(r.Context(), bundleID)
	if err != nil {
		writeBundleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBundleResponse(bundle))
}

func (h *BundleHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	bundleID, ok := parseBundleID(w, r)
	if !ok {
		return
	}

	var req applyEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	eventType := domain.EventType(req.EventType)
	switch eventType {
	case domain.EventUse, domain.EventRefund, domain.EventExpire, domain.EventCancel:
	default:
		writeError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	var eventDate time.Time
	if req.EventDate != nil {
		eventDate = *req.EventDate
	}

	bundle, err := h.lifecycle.ApplyEvent(r.Context(), bundleID, eventType, eventDate)
	if err != nil {
		writeBundleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBundleResponse(bundle))
}

func (h *BundleHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	bundleID, ok := parseBundleID(w, r)
	if !ok {
		return
	}

	history, err := h.lifecycle.History(r.Context(), bundleID)
	if err != nil {
		writeBundleError(w, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(history))
	for _, ev := range history {
		out = append(out, map[string]interface{}{
			"id":         ev.ID.String(),
			"seq":        ev.Seq,
			"event_type": string(ev.EventType),
			"event_date": ev.EventDate.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// VerifyReplay exposes the ledger-replay audit check.
func (h *BundleHandler) VerifyReplay(w http.ResponseWriter, r *http.Request) {
	bundleID, ok := parseBundleID(w, r)
	if !ok {
		return
	}

	if err := h.lifecycle.VerifyReplay(r.Context(), bundleID); err != nil {
		if errors.Is(err, ports.ErrBundleNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusConflict, map[string]string{"consistent": "false", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"consistent": "true"})
}

func parseBundleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "bundleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bundle id")
		return uuid.Nil, false
	}
	return id, true
}

func writeBundleError(w http.ResponseWriter, err error) {
	var rejection *domain.RejectionError
	switch {
	case errors.Is(err, ports.ErrBundleNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &rejection):
		writeError(w, http.StatusConflict, rejection.Error())
	case errors.Is(err, ports.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
