package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Token and cookie settings
const (
	AuthCookieName = "authToken"
	TokenTTL       = 7 * 24 * time.Hour
)

// Validation limits
const (
	MinNameLength        = 2
	MaxNameLength        = 50
	MinPasswordLength    = 6
	MaxPasswordLength    = 128
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)
