package promptpolicy_test

import (
	"testing"
	"time"

	"github.com/baudien321/promptpro/internal/app/policy/promptpolicy"
	"github.com/baudien321/promptpro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func teamWith(members ...models.TeamMember) *models.Team {
	return &models.Team{
		ID:      primitive.NewObjectID(),
		Name:    "Test Team",
		Plan:    models.PlanFree,
		Members: members,
	}
}

func entry(userID primitive.ObjectID, role string) models.TeamMember {
	return models.TeamMember{UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
}

func teamPrompt(creatorID primitive.ObjectID, teamID primitive.ObjectID) *models.Prompt {
	return &models.Prompt{
		ID:         primitive.NewObjectID(),
		Title:      "Test Prompt",
		CreatorID:  creatorID,
		Visibility: models.VisibilityTeam,
		TeamID:     &teamID,
	}
}

func TestPrivatePrompt_CreatorOnly(t *testing.T) {
	creator := primitive.NewObjectID()
	other := primitive.NewObjectID()
	p := &models.Prompt{CreatorID: creator, Visibility: models.VisibilityPrivate}

	for _, a := range []promptpolicy.Action{promptpolicy.ActionView, promptpolicy.ActionEdit, promptpolicy.ActionDelete} {
		if !promptpolicy.CanManage(nil, creator, p, a) {
			t.Errorf("creator denied action %v on private prompt", a)
		}
		if promptpolicy.CanManage(nil, other, p, a) {
			t.Errorf("non-creator allowed action %v on private prompt", a)
		}
	}
}

func TestPublicPrompt_AnyoneViews_CreatorMutates(t *testing.T) {
	creator := primitive.NewObjectID()
	other := primitive.NewObjectID()
	p := &models.Prompt{CreatorID: creator, Visibility: models.VisibilityPublic}

	if !promptpolicy.CanManage(nil, other, p, promptpolicy.ActionView) {
		t.Error("anyone should view a public prompt")
	}
	if promptpolicy.CanManage(nil, other, p, promptpolicy.ActionEdit) {
		t.Error("non-creator must not edit a public prompt")
	}
	if promptpolicy.CanManage(nil, other, p, promptpolicy.ActionDelete) {
		t.Error("non-creator must not delete a public prompt")
	}
	if !promptpolicy.CanManage(nil, creator, p, promptpolicy.ActionEdit) {
		t.Error("creator should edit their public prompt")
	}
}

func TestTeamPrompt_MemberEditsOwnOnly(t *testing.T) {
	author := primitive.NewObjectID()
	peer := primitive.NewObjectID()
	tm := teamWith(
		entry(primitive.NewObjectID(), "owner"),
		entry(author, "member"),
		entry(peer, "member"),
	)
	p := teamPrompt(author, tm.ID)

	if !promptpolicy.CanManage(tm, author, p, promptpolicy.ActionEdit) {
		t.Error("member should edit their own team prompt")
	}
	if promptpolicy.CanManage(tm, peer, p, promptpolicy.ActionEdit) {
		t.Error("member must not edit another member's prompt")
	}
}

func TestTeamPrompt_AdminEditsAny(t *testing.T) {
	author := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	tm := teamWith(
		entry(primitive.NewObjectID(), "owner"),
		entry(admin, "admin"),
		entry(author, "member"),
	)
	p := teamPrompt(author, tm.ID)

	if !promptpolicy.CanManage(tm, admin, p, promptpolicy.ActionEdit) {
		t.Error("admin should edit any team prompt")
	}
	if !promptpolicy.CanManage(tm, admin, p, promptpolicy.ActionDelete) {
		t.Error("admin should delete any team prompt")
	}
}

// A member cannot delete even their own team prompt: the capability table
// has no delete-own-prompts entry.
func TestTeamPrompt_MemberCannotDeleteOwn(t *testing.T) {
	author := primitive.NewObjectID()
	tm := teamWith(
		entry(primitive.NewObjectID(), "owner"),
		entry(author, "member"),
	)
	p := teamPrompt(author, tm.ID)

	if promptpolicy.CanManage(tm, author, p, promptpolicy.ActionDelete) {
		t.Error("member self-delete should be denied by the capability table")
	}
}

func TestTeamPrompt_NonMemberDeniedEverything(t *testing.T) {
	author := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	tm := teamWith(entry(author, "owner"))
	p := teamPrompt(author, tm.ID)

	for _, a := range []promptpolicy.Action{promptpolicy.ActionView, promptpolicy.ActionEdit, promptpolicy.ActionDelete} {
		if promptpolicy.CanManage(tm, outsider, p, a) {
			t.Errorf("outsider allowed action %v on team prompt", a)
		}
	}
}

func TestTeamPrompt_NilTeamDenies(t *testing.T) {
	author := primitive.NewObjectID()
	teamID := primitive.NewObjectID()
	p := teamPrompt(author, teamID)

	if promptpolicy.CanManage(nil, author, p, promptpolicy.ActionView) {
		t.Error("team prompt with no team document must deny")
	}
}
