// internal/app/features/billing/routes.go
package billing

import (
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the billing routes (mounted at /billing). The webhook
// must stay outside the session middleware: Stripe authenticates with a
// signature header, not a cookie.
func Routes(h *Handler, sm *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.With(sm.RequireSignedIn).Post("/checkout", h.HandleCheckout)
	r.Post("/webhook", h.HandleWebhook)

	return r
}
