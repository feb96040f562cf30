// AngelaMos | 2026
// actor.go

package core

// Actor is the authenticated caller an operation is performed for.
type Actor struct {
	UserID int64
	Role   string
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

func (a Actor) IsTutor() bool {
	return a.Role == RoleTutor
}

func (a Actor) IsStudent() bool {
	return a.Role == RoleStudent
}

// Owns reports whether the actor is the user a record belongs to.
func (a Actor) Owns(userID int64) bool {
	return a.UserID != 0 && a.UserID == userID
}

// CanManage reports whether the actor may change a record owned by
// userID: the owner or any super admin.
func (a Actor) CanManage(userID int64) bool {
	return a.IsSuperAdmin() || a.Owns(userID)
}
