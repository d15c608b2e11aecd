package userctx

import "context"

// Context key type
type contextKey string

const userIDKey contextKey = "user_id"
const usernameKey contextKey = "username"

// SetUserID adds the authenticated user's ID to the request context
func SetUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves the authenticated user's ID from the request
// context. Returns 0 when unauthenticated.
func GetUserID(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 0
}

// SetUsername adds the authenticated username to the request context
func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsername retrieves the authenticated username from the request
// context, falling back to "anonymous"
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey).(string); ok && name != "" {
		return name
	}
	return "anonymous"
}
