// Package common contains constants and sentinel errors shared by the
// GuiDipper client packages.
package common

// Keys of the local key/value store. The auth keys are the ones removed on
// logout; AvatarURLKey is a legacy cache kept across sessions.
const (
	TokenKey     = "auth_token"
	UserKey      = "auth_user"
	ExpiryKey    = "auth_expiry"
	AvatarURLKey = "avatar_url"
)

// AuthKeys lists every key that belongs to a login session.
var AuthKeys = []string{TokenKey, UserKey, ExpiryKey}

// HTTP header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)
