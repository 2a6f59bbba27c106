package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// TutorCachePrefix prefixes cached tutor cards.
const TutorCachePrefix = "tutor:card:"

// Gin context keys.
const (
	LoggerKey    = "logger"
	PrincipalKey = "principal"
	RequestIDKey = "requestID"
)
