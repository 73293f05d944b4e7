// internal/domain/models/plan.go
package models

// Plan is a subscription tier. It applies to both users (personal prompt
// quota) and teams (shared prompt quota).
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Valid reports whether p is a known plan value.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro
}
