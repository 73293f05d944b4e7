package audit_test

import (
	"testing"
	"time"

	"github.com/baudien321/promptpro/internal/app/store/audit"
	"github.com/baudien321/promptpro/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Append(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := primitive.NewObjectID()
	err := store.Append(ctx, audit.Event{
		ActorID:    &actor,
		Action:     audit.ActionPromptCreated,
		TargetType: audit.TargetPrompt,
		TargetID:   primitive.NewObjectID(),
		Details:    map[string]string{"visibility": "private"},
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected Timestamp to default to now")
	}
	if events[0].Action != audit.ActionPromptCreated {
		t.Errorf("Action: got %q, want %q", events[0].Action, audit.ActionPromptCreated)
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	teamID := primitive.NewObjectID()

	seed := []audit.Event{
		{ActorID: &alice, Action: audit.ActionTeamCreated, TargetType: audit.TargetTeam, TargetID: teamID},
		{ActorID: &alice, Action: audit.ActionMemberAdded, TargetType: audit.TargetTeam, TargetID: teamID},
		{ActorID: &bob, Action: audit.ActionPromptDeleted, TargetType: audit.TargetPrompt, TargetID: primitive.NewObjectID()},
	}
	for _, ev := range seed {
		if err := store.Append(ctx, ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	byActor, err := store.Query(ctx, audit.QueryFilter{ActorID: &alice})
	if err != nil {
		t.Fatalf("Query by actor failed: %v", err)
	}
	if len(byActor) != 2 {
		t.Errorf("by actor: got %d events, want 2", len(byActor))
	}

	byAction, err := store.Query(ctx, audit.QueryFilter{Action: audit.ActionPromptDeleted})
	if err != nil {
		t.Fatalf("Query by action failed: %v", err)
	}
	if len(byAction) != 1 {
		t.Errorf("by action: got %d events, want 1", len(byAction))
	}

	byTarget, err := store.Query(ctx, audit.QueryFilter{TargetType: audit.TargetTeam, TargetID: &teamID})
	if err != nil {
		t.Fatalf("Query by target failed: %v", err)
	}
	if len(byTarget) != 2 {
		t.Errorf("by target: got %d events, want 2", len(byTarget))
	}
}

func TestStore_Query_TimeWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old := time.Now().UTC().Add(-2 * time.Hour)
	if err := store.Append(ctx, audit.Event{
		Action:     audit.ActionUserRegistered,
		TargetType: audit.TargetUser,
		TargetID:   primitive.NewObjectID(),
		Timestamp:  old,
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, audit.Event{
		Action:     audit.ActionUserRegistered,
		TargetType: audit.TargetUser,
		TargetID:   primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	cutoff := time.Now().UTC().Add(-time.Hour)
	recent, err := store.Query(ctx, audit.QueryFilter{StartTime: &cutoff})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("recent events: got %d, want 1", len(recent))
	}
}
