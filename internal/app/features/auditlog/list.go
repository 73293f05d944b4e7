// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/app/store/audit"
	"github.com/baudien321/promptpro/internal/app/system/authz"
	"github.com/baudien321/promptpro/internal/app/system/httpjson"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /audit.
//
// There is no global administrator, so the trail is scoped to what the
// requester is entitled to see: by default their own actions, or with
// ?team_id= the events targeting a team they own or administer.
// Optional filters: action, start, end (RFC 3339), limit, offset.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authz.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	q := r.URL.Query()
	filter := audit.QueryFilter{Action: q.Get("action")}

	if s := q.Get("start"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httpjson.ValidationFailed(w, map[string]string{"start": "must be RFC 3339"})
			return
		}
		filter.StartTime = &ts
	}
	if s := q.Get("end"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httpjson.ValidationFailed(w, map[string]string{"end": "must be RFC 3339"})
			return
		}
		filter.EndTime = &ts
	}
	if s := q.Get("limit"); s != "" {
		filter.Limit, _ = strconv.ParseInt(s, 10, 64)
	}
	if s := q.Get("offset"); s != "" {
		filter.Offset, _ = strconv.ParseInt(s, 10, 64)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if s := q.Get("team_id"); s != "" {
		teamID, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			httpjson.ValidationFailed(w, map[string]string{"team_id": "invalid team id"})
			return
		}
		team, err := h.Teams.GetByID(ctx, teamID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.NotFound(w, "team")
				return
			}
			h.Log.Error("auditlog: team load failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		if !teampolicy.HasCapability(team, userID, teampolicy.CapManageTeamSettings) {
			httpjson.NotFound(w, "team")
			return
		}
		filter.TargetType = audit.TargetTeam
		filter.TargetID = &team.ID
	} else {
		filter.ActorID = &userID
	}

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		h.Log.Error("auditlog: query failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, events)
}
