// internal/app/features/billing/webhook.go
package billing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const webhookBodyLimit = 64 << 10

// HandleWebhook handles POST /billing/webhook.
//
// Stripe retries until it sees a 2xx, so every recoverable oddity
// (unknown event kind, missing metadata, team already gone) is logged
// and acknowledged rather than errored. Only a bad signature or an
// unreadable body gets a 400. Plan transitions are unconditional $set
// writes, so redelivered events are harmless.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "unreadable body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		h.Log.Warn("billing: webhook signature rejected", zap.Error(err))
		httpjson.ValidationFailed(w, map[string]string{"signature": "invalid webhook signature"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch string(event.Type) {
	case "checkout.session.completed":
		h.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		h.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		h.handleSubscriptionEnded(ctx, event, "subscription_deleted")
	default:
		h.Log.Debug("billing: ignoring webhook event", zap.String("type", string(event.Type)))
	}

	w.WriteHeader(http.StatusOK)
}

// handleCheckoutCompleted upgrades the team named in the session
// metadata to the pro plan and records its billing identifiers.
func (h *Handler) handleCheckoutCompleted(ctx context.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.Log.Error("billing: bad checkout.session payload", zap.Error(err))
		return
	}

	raw := sess.Metadata["team_id"]
	if raw == "" {
		raw = sess.ClientReferenceID
	}
	teamID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.Log.Warn("billing: checkout completed without a usable team id",
			zap.String("session_id", sess.ID))
		return
	}

	team, err := h.Teams.GetByID(ctx, teamID)
	if err != nil {
		h.Log.Warn("billing: checkout completed for unknown team",
			zap.String("team_id", teamID.Hex()), zap.Error(err))
		return
	}

	var customerID, subscriptionID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}

	if err := h.Teams.SetPlan(ctx, teamID, models.PlanPro, customerID, subscriptionID); err != nil {
		h.Log.Error("billing: upgrade failed", zap.String("team_id", teamID.Hex()), zap.Error(err))
		return
	}

	h.AuditLog.PlanChanged(ctx, teamID, string(team.Plan), string(models.PlanPro), "checkout_completed")
	h.Log.Info("billing: team upgraded",
		zap.String("team_id", teamID.Hex()),
		zap.String("subscription_id", subscriptionID))
}

// handleSubscriptionUpdated downgrades a team whose subscription left
// the active/trialing states. Events reporting an active subscription
// are ignored: an upgrade only ever happens through checkout.
func (h *Handler) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		h.Log.Error("billing: bad subscription payload", zap.Error(err))
		return
	}

	status := string(sub.Status)
	if status == "active" || status == "trialing" {
		h.Log.Debug("billing: subscription healthy, nothing to do",
			zap.String("subscription_id", sub.ID))
		return
	}

	h.downgradeBySubscription(ctx, sub.ID, "subscription_"+status)
}

// handleSubscriptionEnded downgrades the team owning the deleted
// subscription.
func (h *Handler) handleSubscriptionEnded(ctx context.Context, event stripe.Event, reason string) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		h.Log.Error("billing: bad subscription payload", zap.Error(err))
		return
	}
	h.downgradeBySubscription(ctx, sub.ID, reason)
}

func (h *Handler) downgradeBySubscription(ctx context.Context, subscriptionID, reason string) {
	team, err := h.Teams.GetBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.Log.Warn("billing: no team for subscription",
				zap.String("subscription_id", subscriptionID))
			return
		}
		h.Log.Error("billing: subscription lookup failed", zap.Error(err))
		return
	}
	if team.Plan == models.PlanFree {
		return
	}

	if err := h.Teams.SetPlan(ctx, team.ID, models.PlanFree, "", ""); err != nil {
		h.Log.Error("billing: downgrade failed",
			zap.String("team_id", team.ID.Hex()), zap.Error(err))
		return
	}

	h.AuditLog.PlanChanged(ctx, team.ID, string(team.Plan), string(models.PlanFree), reason)
	h.Log.Info("billing: team downgraded",
		zap.String("team_id", team.ID.Hex()),
		zap.String("reason", reason))
}
