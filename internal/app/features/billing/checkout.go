// internal/app/features/billing/checkout.go
package billing

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	TeamID string `json:"team_id"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// HandleCheckout handles POST /billing/checkout. It creates a Stripe
// Checkout session for upgrading a team to the pro plan and returns the
// hosted payment URL. Only owners and admins of the team may start one.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	if !h.IsConfigured() {
		h.Log.Warn("billing: checkout requested but stripe is not configured")
		httpjson.Unavailable(w, "billing is not configured")
		return
	}

	var req checkoutRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	teamID, err := primitive.ObjectIDFromHex(req.TeamID)
	if err != nil {
		httpjson.ValidationFailed(w, map[string]string{"team_id": "invalid team id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "team")
			return
		}
		h.Log.Error("billing: team load failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !teampolicy.HasCapability(team, userID, teampolicy.CapManageTeamSettings) {
		httpjson.Forbidden(w, "Only team owners and admins can manage billing")
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(h.PriceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(h.BaseURL + "/billing/success"),
		CancelURL:         stripe.String(h.BaseURL + "/billing/cancelled"),
		ClientReferenceID: stripe.String(team.ID.Hex()),
		Metadata:          map[string]string{"team_id": team.ID.Hex()},
	}
	if team.StripeCustomerID != "" {
		params.Customer = stripe.String(team.StripeCustomerID)
	}

	sess, err := h.createSession(params)
	if err != nil {
		h.Log.Error("billing: checkout session failed",
			zap.String("team_id", team.ID.Hex()), zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, checkoutResponse{URL: sess.URL})
}
