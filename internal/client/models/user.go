// Package models holds the data exchanged with the GuiDipper backend and
// kept in the local store.
package models

// User is the identity record of the logged-in account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserPatch carries profile fields to merge into a User. Empty fields are
// left untouched.
type UserPatch struct {
	Email     string
	Username  string
	AvatarURL string
}

// Merge returns a copy of u with the non-empty fields of p applied.
func (u User) Merge(p UserPatch) User {
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.Username != "" {
		u.Username = p.Username
	}
	if p.AvatarURL != "" {
		u.AvatarURL = p.AvatarURL
	}
	return u
}

// DisplayName is the username when set, the email otherwise.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
