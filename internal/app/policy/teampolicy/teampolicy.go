// internal/app/policy/teampolicy/teampolicy.go

// Package teampolicy holds the static role/capability table for teams and
// the resolver that evaluates it against a team's membership list.
//
// Everything here is a pure function of its inputs: callers fetch the team
// document fresh per request and pass it in. No authorization state is
// cached in-process.
package teampolicy

import (
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a closed set of team roles. Stored as a string in the team's
// members array; parse with ParseRole.
type Role int

const (
	Owner Role = iota
	Admin
	Member
)

// String returns the stored form of the role.
func (r Role) String() string {
	switch r {
	case Owner:
		return models.RoleOwner
	case Admin:
		return models.RoleAdmin
	case Member:
		return models.RoleMember
	}
	return "unknown"
}

// ParseRole maps a stored role string to a Role. Unknown strings return
// ok=false; callers must treat that as "no capabilities".
func ParseRole(s string) (Role, bool) {
	switch s {
	case models.RoleOwner:
		return Owner, true
	case models.RoleAdmin:
		return Admin, true
	case models.RoleMember:
		return Member, true
	}
	return 0, false
}

// Capability is a named permission bit evaluated against a resolved role.
type Capability int

const (
	CapManageTeamSettings Capability = iota
	CapInviteMembers
	CapRemoveMembers
	CapEditAnyPrompt
	CapDeleteAnyPrompt
	CapControlTeamVisibility
	CapViewTeamPrompts
	CapCreatePrompts
	CapEditOwnPrompts
	CapCommentOnPrompts
)

// Can reports whether the role grants the capability.
//
// Owner and admin are currently capability-identical. That mirrors the
// existing role table; whether they should diverge is an open question
// (see DESIGN.md). Note there is no delete-own-prompts capability: a
// member cannot delete their own team prompts unless also admin/owner.
func (r Role) Can(c Capability) bool {
	switch r {
	case Owner, Admin:
		switch c {
		case CapManageTeamSettings,
			CapInviteMembers,
			CapRemoveMembers,
			CapEditAnyPrompt,
			CapDeleteAnyPrompt,
			CapControlTeamVisibility,
			CapViewTeamPrompts,
			CapCreatePrompts,
			CapEditOwnPrompts,
			CapCommentOnPrompts:
			return true
		}
		return false
	case Member:
		switch c {
		case CapViewTeamPrompts,
			CapCreatePrompts,
			CapEditOwnPrompts,
			CapCommentOnPrompts:
			return true
		}
		return false
	}
	return false
}

// ResolveRole looks up userID in the team's members array. ok=false means
// the user is not a member and has no implicit capabilities.
func ResolveRole(team *models.Team, userID primitive.ObjectID) (Role, bool) {
	if team == nil {
		return 0, false
	}
	m, found := team.Member(userID)
	if !found {
		return 0, false
	}
	return ParseRole(m.Role)
}

// HasCapability reports whether userID's resolved role on team grants the
// capability. Any miss (nil team, non-member, unknown role) is false.
func HasCapability(team *models.Team, userID primitive.ObjectID, c Capability) bool {
	role, ok := ResolveRole(team, userID)
	if !ok {
		return false
	}
	return role.Can(c)
}
