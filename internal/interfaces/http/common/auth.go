package common

import "context"

type contextKey string

const authUserContextKey contextKey = "authUser"

// AuthenticatedUser represents the JWT-derived principal.
type AuthenticatedUser struct {
	ID          string `json:"id"`
	Nome        string `json:"nome,omitempty"`
	Email       string `json:"email,omitempty"`
	TipoUsuario string `json:"tipo_usuario,omitempty"`
}

// IsAdmin reports whether the principal carries the admin role claim.
func (u AuthenticatedUser) IsAdmin() bool {
	return u.TipoUsuario == "admin"
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(AuthenticatedUser)
	return user, ok
}
