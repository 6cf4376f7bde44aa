package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kioskpos/bundle_service/internal/core/domain"
	"github.com/kioskpos/bundle_service/internal/core/ports"
)

func NewRouter(purchases *PurchaseHandler, bundles *BundleHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/packages", purchases.ListPackages)
	r.Post("/purchases", purchases.CreatePurchase)
	r.Post("/consumers/resolve", purchases.ResolveConsumer)

	r.Route("/bundles/{bundleID}", func(r chi.Router) {
		r.Get("/", bundles.GetBundle)
		r.Get("/events", bundles.GetHistory)
		r.Post("/events", bundles.ApplyEvent)
		r.Get("/audit", bundles.VerifyReplay)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeConsumerError surfaces field-level validation messages so the kiosk
// can highlight the offending inputs; everything else maps to plain errors.
func writeConsumerError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	if errors.Is(err, ports.ErrConsumerNotFound) {
		writeError(w, http.StatusNotFound, "consumer not found")
		return
	}

	writeError(w, http.StatusBadRequest, err.Error())
}
