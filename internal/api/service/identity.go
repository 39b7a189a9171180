package service

import "racedebrief/internal/api/models"

// Identity is the acting user for one request, passed explicitly into
// every authorized service call. The services trust it as given and
// never read auth state from anywhere ambient; the HTTP layer is the
// only place allowed to mint one, and it does so from validated JWT
// claims rather than a client-supplied user id.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
