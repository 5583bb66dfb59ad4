// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type (
	userIDKey    struct{}
	roleKey      struct{}
	requestIDKey struct{}
)

// WithUserID records the authenticated member.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromCtx reports the authenticated member. uuid.Nil counts as absent.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

// ActorFromCtx is UserIDFromCtx as a nullable audit actor. Anonymous
// requests and background jobs yield nil.
func ActorFromCtx(ctx context.Context) *uuid.UUID {
	if id, ok := UserIDFromCtx(ctx); ok {
		return &id
	}
	return nil
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromCtx returns the role claim, or "" when unauthenticated.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request id, or "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
