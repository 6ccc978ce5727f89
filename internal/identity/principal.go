// Package identity turns the host's mini-app launch data into the shopper the
// state layer works for. A missing or partial host degrades to the guest.
package identity

import (
	"strconv"
)

const (
	GuestID = "guest"

	shopperPrefixUser   = "tg:"
	shopperPrefixDevice = "device:"
)

// Principal is the current shopper.
type Principal struct {
	UserID   int64  `json:"user_id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	IsGuest  bool   `json:"is_guest"`
	IsAdmin  bool   `json:"is_admin"`
	// ShopperKey selects the shopper's state container.
	ShopperKey string `json:"-"`
}

// AuthorID is the id stamped on reviews written by this principal.
func (p Principal) AuthorID() string {
	if p.IsGuest {
		return GuestID
	}
	return strconv.FormatInt(p.UserID, 10)
}

type contextKey struct{}
