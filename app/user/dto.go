// Package user contains the account lifecycle endpoints: register, login,
// verify and fetch
package user

import (
	"time"

	"dormhub/room-api/internal/model"
)

// userResponse is what leaves the API for a user record. Sensitive columns
// are omitted by construction, not stripped after the fact
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ProfileDp string    `json:"profileDp,omitempty"`
	Verified  bool      `json:"verified"`
	ShareCode string    `json:"shareCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ProfileDp: u.ProfileDp,
		Verified:  u.Verified,
		ShareCode: u.ShareCode,
		CreatedAt: u.CreatedAt,
	}
}
