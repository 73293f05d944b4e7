// internal/app/system/authz/authz.go

// Package authz extracts the authenticated identity from the request
// context. PromptPro has no global roles: all authorization is resolved
// per team (policy packages) or per resource (creator checks), so the
// only thing carried here is the identity itself.
package authz

import (
	"net/http"

	"github.com/baudien321/promptpro/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's name, Mongo ObjectID, and a found
// flag. If no user is present or the stored ID is malformed, it returns
// ok=false, so ok=true always means an authenticated user with a valid
// ObjectID.
func UserCtx(r *http.Request) (name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", primitive.NilObjectID, false
	}
	return u.Name, userID, true
}

// UserID is UserCtx when only the ID matters.
func UserID(r *http.Request) (primitive.ObjectID, bool) {
	_, id, ok := UserCtx(r)
	return id, ok
}
