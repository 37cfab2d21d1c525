package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAccountID = errors.New("invalid account id")

// AccountID is the opaque, store-generated profile identifier.
type AccountID string

// ParseAccountID validates a caller-supplied id string. The store issues
// UUIDs, so anything that does not parse as one cannot name a profile.
func ParseAccountID(s string) (AccountID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", ErrInvalidAccountID
	}
	return AccountID(s), nil
}

func (id AccountID) String() string { return string(id) }

// Profile represents a user profile in the database.
type Profile struct {
	ID           AccountID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Projection returns the public view of a profile, without the password digest.
func (p *Profile) Projection() ProfileResponse {
	return ProfileResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// RegisterRequest represents a profile registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileWithToken is the response to a successful registration or login.
type ProfileWithToken struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileUpdate carries the optional fields of a profile patch. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ProfilePatch is the store-level form of a partial update: the password
// has already been hashed. Nil fields are left untouched.
type ProfilePatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// ProfileResponse represents profile data safe for API responses (no
// sensitive fields).
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeResponse is the authenticated "who am I" projection. UserID is part of
// the response contract but is not stored on the profile, so it is always
// null.
type MeResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
