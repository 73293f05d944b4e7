// internal/app/system/httpjson/httpjson.go

// Package httpjson renders JSON responses and the API error taxonomy.
//
// Error codes are stable strings the client can branch on:
//
//	validation_failed  400  bad or missing input, with field messages
//	unauthorized       401  no authenticated user
//	forbidden          403  authenticated but not allowed
//	not_found          404  referenced entity does not exist
//	limit_exceeded     403  plan quota reached, with limit/current/scope
//	unavailable        503  upstream dependency not configured or down
//	internal_error     500  store or upstream failure, no detail exposed
//
// Limit rejections carry structured quota metadata (limit, current,
// scope) in addition to the code.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Error codes.
const (
	CodeValidation    = "validation_failed"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodeNotFound      = "not_found"
	CodeLimitExceeded = "limit_exceeded"
	CodeUnavailable   = "unavailable"
	CodeInternal      = "internal_error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`

	// Quota metadata, present only for limit_exceeded.
	Limit   *int   `json:"limit,omitempty"`
	Current *int   `json:"current,omitempty"`
	Scope   string `json:"scope,omitempty"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	// Encoding errors at this point mean the connection is gone; there is
	// nothing useful to send the client.
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ValidationFailed writes a 400 with per-field messages.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	Respond(w, http.StatusBadRequest, ErrorBody{
		Error:  "validation failed",
		Code:   CodeValidation,
		Fields: fields,
	})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Respond(w, http.StatusUnauthorized, ErrorBody{
		Error: "sign in required",
		Code:  CodeUnauthorized,
	})
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "you do not have permission to do that"
	}
	Respond(w, http.StatusForbidden, ErrorBody{
		Error: msg,
		Code:  CodeForbidden,
	})
}

// NotFound writes a 404 naming the missing entity kind.
func NotFound(w http.ResponseWriter, what string) {
	if what == "" {
		what = "resource"
	}
	Respond(w, http.StatusNotFound, ErrorBody{
		Error: what + " not found",
		Code:  CodeNotFound,
	})
}

// LimitExceeded writes a 403 carrying quota metadata.
func LimitExceeded(w http.ResponseWriter, limit, current int, scope string) {
	Respond(w, http.StatusForbidden, ErrorBody{
		Error:   "prompt limit reached for your plan",
		Code:    CodeLimitExceeded,
		Limit:   &limit,
		Current: &current,
		Scope:   scope,
	})
}

// Unavailable writes a 503 for a feature whose upstream dependency is
// not configured or not reachable.
func Unavailable(w http.ResponseWriter, msg string) {
	Respond(w, http.StatusServiceUnavailable, ErrorBody{
		Error: msg,
		Code:  CodeUnavailable,
	})
}

// Internal writes a generic 500. Upstream detail is logged by the caller,
// never surfaced to the client.
func Internal(w http.ResponseWriter) {
	Respond(w, http.StatusInternalServerError, ErrorBody{
		Error: "an internal error occurred",
		Code:  CodeInternal,
	})
}

// MaxBodyBytes caps JSON request bodies. Prompts are text; anything near
// this size is abuse, not data.
const MaxBodyBytes = 1 << 20 // 1 MB

// Decode reads the request body into dst, rejecting unknown fields and
// oversized payloads. Callers translate a non-nil error into
// ValidationFailed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second value means trailing garbage after the JSON object.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
