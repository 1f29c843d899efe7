package domain

import "time"

// User is the cached snapshot of the authenticated account's profile.
// It is replaced wholesale on every update, never patched field by field.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	Avatar      string     `json:"avatar"`
	Timezone    string     `json:"timezone"`
	Language    string     `json:"language"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TokenPair is the credential set issued by the authentication service.
// Only AccessToken is retained by the session; the refresh token and
// expiry are accepted but not acted upon (no renewal logic exists).
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginInput carries the credentials submitted on login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries the fields submitted on account creation.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// ProfileUpdate carries a partial profile edit. Nickname is mandatory;
// the optional fields are omitted from the request when nil.
type ProfileUpdate struct {
	Nickname string  `json:"nickname"`
	Avatar   *string `json:"avatar,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Language *string `json:"language,omitempty"`
}
