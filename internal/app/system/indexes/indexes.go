// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/baudien321/promptpro/internal/app/store/audit"
	collectionstore "github.com/baudien321/promptpro/internal/app/store/collections"
	commentstore "github.com/baudien321/promptpro/internal/app/store/comments"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is
idempotent. We aggregate errors so any problem is visible and startup
can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := teamstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := promptstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "prompts: "+err.Error())
	}
	if err := collectionstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "collections: "+err.Error())
	}
	if err := commentstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := usagestore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "usage_events: "+err.Error())
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
