// internal/app/policy/promptpolicy/promptpolicy.go

// Package promptpolicy decides who may view, edit, or delete a prompt.
//
// For team-visibility prompts the decision delegates to the team's
// role/capability table. Private and public prompts bypass the team
// resolver entirely: private prompts belong to their creator alone, and
// public prompts are world-viewable but only creator-mutable.
package promptpolicy

import (
	"github.com/baudien321/promptpro/internal/app/policy/teampolicy"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action is a requested operation on a prompt.
type Action int

const (
	ActionView Action = iota
	ActionEdit
	ActionDelete
)

// CanManage reports whether userID may perform action on prompt.
// team must be the prompt's team document when prompt.Visibility is
// "team"; it is ignored otherwise. A nil team for a team prompt denies.
func CanManage(team *models.Team, userID primitive.ObjectID, prompt *models.Prompt, action Action) bool {
	if prompt == nil {
		return false
	}

	switch prompt.Visibility {
	case models.VisibilityPrivate:
		return prompt.CreatorID == userID
	case models.VisibilityPublic:
		if action == ActionView {
			return true
		}
		return prompt.CreatorID == userID
	case models.VisibilityTeam:
		return canManageTeamPrompt(team, userID, prompt, action)
	}
	return false
}

// canManageTeamPrompt evaluates the role/capability table for a team
// prompt.
//
// Delete for a member's own prompt fails here: the table has no
// delete-own-prompts capability, so creators need admin/owner to delete.
// Preserved as-is; see DESIGN.md.
func canManageTeamPrompt(team *models.Team, userID primitive.ObjectID, prompt *models.Prompt, action Action) bool {
	role, ok := teampolicy.ResolveRole(team, userID)
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return role.Can(teampolicy.CapViewTeamPrompts)
	case ActionEdit:
		if role.Can(teampolicy.CapEditAnyPrompt) {
			return true
		}
		return prompt.CreatorID == userID && role.Can(teampolicy.CapEditOwnPrompts)
	case ActionDelete:
		return role.Can(teampolicy.CapDeleteAnyPrompt)
	}
	return false
}
