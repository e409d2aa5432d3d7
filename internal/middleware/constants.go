// File: internal/middleware/constants.go
package middleware

// UserIDKey is the context key type carrying the authenticated user's ID.
type UserIDKey string

const ContextUserIDKey = UserIDKey("userID")
