package plans_test

import (
	"testing"

	"github.com/baudien321/promptpro/internal/app/system/plans"
	"github.com/baudien321/promptpro/internal/domain/models"
)

func TestCheckPersonal_FreeAtLimit(t *testing.T) {
	u := &models.User{Plan: models.PlanFree, PromptCount: 10}

	d := plans.CheckPersonal(u)
	if d.Allowed {
		t.Error("free user at limit should be rejected")
	}
	if d.Limit != 10 || d.Current != 10 {
		t.Errorf("decision metadata: got limit=%d current=%d, want 10/10", d.Limit, d.Current)
	}
	if d.Scope != plans.ScopePersonal {
		t.Errorf("scope: got %q, want %q", d.Scope, plans.ScopePersonal)
	}
}

func TestCheckPersonal_FreeBelowLimit(t *testing.T) {
	u := &models.User{Plan: models.PlanFree, PromptCount: 9}

	d := plans.CheckPersonal(u)
	if !d.Allowed {
		t.Error("free user below limit should be allowed")
	}
}

func TestCheckPersonal_ProUnbounded(t *testing.T) {
	u := &models.User{Plan: models.PlanPro, PromptCount: 100000}

	d := plans.CheckPersonal(u)
	if !d.Allowed {
		t.Error("pro user should never hit a personal limit")
	}
	if d.Limit != plans.Unlimited {
		t.Errorf("limit: got %d, want Unlimited", d.Limit)
	}
}

func TestCheckTeam_StoredLimitAuthoritative(t *testing.T) {
	// Team with a custom per-team limit below the plan default.
	tm := &models.Team{Plan: models.PlanPro, PromptLimit: 5}

	if d := plans.CheckTeam(tm, 5); d.Allowed {
		t.Error("custom team limit should win over the plan default")
	}
	if d := plans.CheckTeam(tm, 4); !d.Allowed {
		t.Error("team below its custom limit should be allowed")
	}
}

func TestCheckTeam_ZeroLimitFallsBackToPlanDefault(t *testing.T) {
	tm := &models.Team{Plan: models.PlanFree}

	d := plans.CheckTeam(tm, 49)
	if !d.Allowed {
		t.Error("free team below default limit should be allowed")
	}
	if d.Limit != plans.FreeTeamPromptLimit {
		t.Errorf("limit: got %d, want %d", d.Limit, plans.FreeTeamPromptLimit)
	}

	if d := plans.CheckTeam(tm, 50); d.Allowed {
		t.Error("free team at default limit should be rejected")
	}
}

func TestTeamPromptLimitDefaults(t *testing.T) {
	if got := plans.TeamPromptLimit(models.PlanFree); got != 50 {
		t.Errorf("free team default: got %d, want 50", got)
	}
	if got := plans.TeamPromptLimit(models.PlanPro); got != 1000 {
		t.Errorf("pro team default: got %d, want 1000", got)
	}
}
