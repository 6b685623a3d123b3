// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// SystemOperator is recorded as creator when a request is anonymous.
const SystemOperator = "system"

// UserContext identifies the operator behind a request.
type UserContext struct {
	Subject string
	Name    string
	Roles   []string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// Operator returns the operator name for audit columns (created_by,
// printed_by), falling back to SystemOperator.
func Operator(ctx context.Context) string {
	u := GetUser(ctx)
	if u == nil {
		return SystemOperator
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Subject != "" {
		return u.Subject
	}
	return SystemOperator
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
