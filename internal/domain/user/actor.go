package user

import "github.com/google/uuid"

// Actor is the authenticated caller as seen by the booking engine.
// Identity is issued elsewhere; only the claims reach this service.
type Actor struct {
	UserID      uuid.UUID
	Role        Role
	Email       string
	CommunityID uuid.UUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may act on a record owned by ownerID.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
