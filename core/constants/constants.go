package constants

import "time"

// Database pool settings.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Request handling.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultTimeout        = 10 * time.Second
)

// Token scopes.
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Echo context keys.
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

// Redis key prefixes.
const (
	RedisKeyCalendarWindow = "calendar:window:"
	RedisKeyActiveUsers    = "calendar:active_users"
)
