package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/services"
)

type PurchaseHandler struct {
	purchases *services.PurchaseService
	resolver  *services.ConsumerResolver
}

func NewPurchaseHandler(purchases *services.PurchaseService, resolver *services.ConsumerResolver) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, resolver: resolver}
}

type createPurchaseRequest struct {
	PackageID      string               `json:"package_id"`
	Consumer       services.ConsumerRef `json:"consumer"`
	PaymentMethod  string               `json:"payment_method"`
	IdempotencyKey string               `json:"idempotency_key"`
}

type bundleResponse struct {
	BundleID      string `json:"bundle_id"`
	ConsumerID    string `json:"consumer_id"`
	Status        string `json:"status"`
	Terminal      bool   `json:"terminal"`
	RemainingUses int    `json:"remaining_uses"`
	PackageID     string `json:"package_id"`
	PackageName   string `json:"package_name"`
	Price         int64  `json:"price"`
	CreatedAt     string `json:"created_at"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

func toBundleResponse(b *domain.Bundle) bundleResponse {
	resp := bundleResponse{
		BundleID:      b.ID.String(),
		ConsumerID:    b.ConsumerID.String(),
		Status:        string(b.Status),
		Terminal:      b.IsTerminal(),
		RemainingUses: b.RemainingUses,
		PackageID:     b.TypeID,
		PackageName:   b.TypeName,
		Price:         b.PriceAtPurchase,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if !b.ExpiresAt.IsZero() {
		resp.ExpiresAt = b.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	bundle, err := h.purchases.Purchase(r.Context(), services.PurchaseRequest{
		PackageID:      req.PackageID,
		Consumer:       req.Consumer,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		IdempotencyKey: req.IdempotencyKey,
	})

	if err != nil {
		writePurchaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBundleResponse(bundle))
}

func (h *PurchaseHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	types, err := h.purchases.ListPackages(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]map[string]interface{}, 0, len(types))
	for _, bt := range types {
		out = append(out, map[string]interface{}{
			"id":            bt.ID,
			"name":          bt.Name,
			"price":         bt.Price,
			"quota":         bt.Quota,
			"validity_days": bt.ValidityDays,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// ResolveConsumer lets the kiosk validate a profile search or registration
// before the operator commits to a purchase.
func (h *PurchaseHandler) ResolveConsumer(w http.ResponseWriter, r *http.Request) {
	var ref services.ConsumerRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	consumer, err := h.resolver.Resolve(r.Context(), ref)
	if err != nil {
		writeConsumerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             consumer.ID.String(),
		"name":           consumer.Name(),
		"email":          consumer.Email,
		"status":         string(consumer.Status),
		"payment_status": consumer.PaymentStatus,
	})
}

func writePurchaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownPackage):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidConsumer):
		writeConsumerError(w, err)
	case errors.Is(err, services.ErrPaymentDeclined):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, services.ErrPurchaseInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPersistenceFailure):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
