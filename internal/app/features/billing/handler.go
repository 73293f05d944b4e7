// internal/app/features/billing/handler.go
package billing

import (
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Billing. It is the only
// place in the application that talks to Stripe.
type Handler struct {
	Teams    *teamstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger

	WebhookSecret string
	PriceID       string
	BaseURL       string

	// createSession is swapped out in tests; everywhere else it is the
	// Stripe SDK call.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewHandler constructs a Billing handler. secretKey is the Stripe API
// key used for outbound calls; webhookSecret verifies inbound event
// signatures.
func NewHandler(teams *teamstore.Store, al *auditlog.Logger, secretKey, webhookSecret, priceID, baseURL string, logger *zap.Logger) *Handler {
	stripe.Key = secretKey
	return &Handler{
		Teams:         teams,
		AuditLog:      al,
		Log:           logger,
		WebhookSecret: webhookSecret,
		PriceID:       priceID,
		BaseURL:       baseURL,
		createSession: session.New,
	}
}

// IsConfigured reports whether Stripe credentials were provided.
func (h *Handler) IsConfigured() bool {
	return h.WebhookSecret != "" && h.PriceID != ""
}
