// internal/app/system/plans/plans.go

// Package plans enforces prompt quotas derived from subscription tiers.
//
// Enforcement is check-then-act: the decision is made against a fresh
// count before the prompt document is inserted. Two concurrent creations
// can both pass the check, so a quota may be transiently overrun by the
// number of in-flight requests. The limit is advisory, not a hard
// resource constraint; see DESIGN.md for the atomic-conditional
// alternative.
package plans

import (
	"github.com/baudien321/promptpro/internal/domain/models"
)

// Personal (per-user) prompt limits by plan.
const (
	FreeUserPromptLimit = 10
	// Pro users are unbounded; represented as Unlimited.
)

// Team prompt limits by plan. A team's stored PromptLimit is
// authoritative; these are the defaults applied on plan transitions.
const (
	FreeTeamPromptLimit = 50
	ProTeamPromptLimit  = 1000
)

// Unlimited marks a quota with no upper bound.
const Unlimited = -1

// Quota scopes reported in limit-exceeded rejections.
const (
	ScopePersonal = "personal"
	ScopeTeam     = "team"
)

// Decision is the structured outcome of a quota check. Limit and Current
// are carried to the caller so a rejection can render an upgrade prompt.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Limit   int    `json:"limit"`
	Current int    `json:"current"`
	Scope   string `json:"scope"`
}

// UserPromptLimit returns the personal prompt limit for a plan.
func UserPromptLimit(p models.Plan) int {
	if p == models.PlanPro {
		return Unlimited
	}
	return FreeUserPromptLimit
}

// TeamPromptLimit returns the default team prompt limit for a plan.
func TeamPromptLimit(p models.Plan) int {
	if p == models.PlanPro {
		return ProTeamPromptLimit
	}
	return FreeTeamPromptLimit
}

// CheckPersonal decides whether the user may create another personal
// (non-team-visibility) prompt, comparing PromptCount against the plan
// limit.
func CheckPersonal(user *models.User) Decision {
	limit := UserPromptLimit(user.Plan)
	d := Decision{Limit: limit, Current: user.PromptCount, Scope: ScopePersonal}
	d.Allowed = limit == Unlimited || user.PromptCount < limit
	return d
}

// CheckTeam decides whether another prompt may be created in the team.
// currentCount is the number of existing prompts whose team_id matches;
// the team's stored PromptLimit is authoritative (it may differ from the
// plan default when configured per team).
func CheckTeam(team *models.Team, currentCount int) Decision {
	limit := team.PromptLimit
	if limit == 0 {
		limit = TeamPromptLimit(team.Plan)
	}
	d := Decision{Limit: limit, Current: currentCount, Scope: ScopeTeam}
	d.Allowed = limit == Unlimited || currentCount < limit
	return d
}
