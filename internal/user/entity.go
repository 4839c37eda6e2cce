// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/surveys/internal/core"
)

type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == core.RoleAdministrator
}
