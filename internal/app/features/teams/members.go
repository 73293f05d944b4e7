// internal/app/features/teams/members.go
package teams

import (
	"context"
	"net/http"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleAddMember handles POST /teams/{id}/members. The invitee is
// identified by email; the default role is member.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	if !teampolicy.HasCapability(team, userID, teampolicy.CapInviteMembers) {
		httpjson.Forbidden(w, "only team owners and admins can add members")
		return
	}

	var req addMemberRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if req.Email == "" {
		httpjson.ValidationFailed(w, map[string]string{"email": "email is required"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleMember
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleMember {
		httpjson.ValidationFailed(w, map[string]string{"role": `role must be "admin" or "member"`})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invitee, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w, "user")
			return
		}
		h.Log.Error("teams: invitee lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Teams.AddMember(ctx, team.ID, invitee.ID, req.Role); err != nil {
		switch err {
		case teamstore.ErrAlreadyMember:
			httpjson.ValidationFailed(w, map[string]string{"email": "user is already a member of this team"})
		case mongo.ErrNoDocuments:
			httpjson.NotFound(w, "team")
		default:
			h.Log.Error("teams: add member failed", zap.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionMemberAdded,
		TargetType: audit.TargetTeam,
		TargetID:   team.ID,
		Details: map[string]string{
			"member_id": invitee.ID.Hex(),
			"role":      req.Role,
		},
	})

	updated, err := h.Teams.GetByID(ctx, team.ID)
	if err != nil {
		h.Log.Error("teams: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// HandleSetMemberRole handles PATCH /teams/{id}/members/{userID}.
// The owner's role is immutable and nobody can be promoted to owner.
func (h *Handler) HandleSetMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}
	if !teampolicy.HasCapability(team, userID, teampolicy.CapManageTeamSettings) {
		httpjson.Forbidden(w, "only team owners and admins can change member roles")
		return
	}

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.NotFound(w, "member")
		return
	}

	var req setRoleRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.ValidationFailed(w, map[string]string{"body": "invalid JSON body"})
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleMember {
		httpjson.ValidationFailed(w, map[string]string{"role": `role must be "admin" or "member"`})
		return
	}

	oldRole := ""
	if m, found := team.Member(targetID); found {
		oldRole = m.Role
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.SetMemberRole(ctx, team.ID, targetID, req.Role); err != nil {
		switch err {
		case teamstore.ErrNotMember:
			httpjson.NotFound(w, "member")
		case teamstore.ErrOwnerImmutable:
			httpjson.Forbidden(w, "the team owner's role cannot be changed")
		default:
			h.Log.Error("teams: set role failed", zap.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	h.AuditLog.MemberRoleChanged(ctx, userID, team.ID, targetID, oldRole, req.Role)

	updated, err := h.Teams.GetByID(ctx, team.ID)
	if err != nil {
		h.Log.Error("teams: reload failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// HandleRemoveMember handles DELETE /teams/{id}/members/{userID}.
// Members may remove themselves (leave); removing anyone else needs the
// remove-members capability. Owner removal is always rejected.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	team := h.loadTeam(w, r)
	if team == nil {
		return
	}

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.NotFound(w, "member")
		return
	}

	if targetID != userID && !teampolicy.HasCapability(team, userID, teampolicy.CapRemoveMembers) {
		httpjson.Forbidden(w, "only team owners and admins can remove members")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.RemoveMember(ctx, team.ID, targetID); err != nil {
		switch err {
		case teamstore.ErrNotMember:
			httpjson.NotFound(w, "member")
		case teamstore.ErrOwnerImmutable:
			httpjson.Forbidden(w, "the team owner cannot be removed")
		default:
			h.Log.Error("teams: remove member failed", zap.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	h.AuditLog.Record(ctx, audit.Event{
		ActorID:    &userID,
		Action:     audit.ActionMemberRemoved,
		TargetType: audit.TargetTeam,
		TargetID:   team.ID,
		Details:    map[string]string{"member_id": targetID.Hex()},
	})

	httpjson.NoContent(w)
}
