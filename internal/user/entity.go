// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"      validate:"required,max=150"`
	Email        string    `db:"email"         validate:"required,email_shape,max=255"`
	PasswordHash string    `db:"password_hash" validate:"password_hash"`
	Role         string    `db:"role"          validate:"user_role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) Validate() error {
	return core.ValidateStruct(u)
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == core.RoleSuperAdmin
}

func (u *User) IsTutor() bool {
	return u.Role == core.RoleTutor
}

func (u *User) IsStudent() bool {
	return u.Role == core.RoleStudent
}
