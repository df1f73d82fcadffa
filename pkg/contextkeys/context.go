package contextkeys

// Custom type so the key cannot collide with other context values.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle travels in a context.
const DBContextKey = contextKey("db")

// ClaimsContextKey holds the authenticated user's token claims.
const ClaimsContextKey = contextKey("claims")

// RequestIDContextKey holds the per-request correlation id.
const RequestIDContextKey = contextKey("request_id")
