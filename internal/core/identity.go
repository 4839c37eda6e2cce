// AngelaMos | 2026
// identity.go

package core

import "fmt"

const (
	RoleAdministrator = "administrator"
	RoleUser          = "user"
)

// Identity is the authenticated user bound to a request.
type Identity struct {
	UserID    int64
	Name      string
	Email     string
	Role      string
	SessionID string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdministrator
}

func IsValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleUser
}

// Authorize is the single role gate used before every restricted operation.
func Authorize(id *Identity, roles ...string) error {
	if id == nil || id.UserID == 0 {
		return fmt.Errorf("authorize: %w", ErrUnauthorized)
	}

	for _, role := range roles {
		if id.Role == role {
			return nil
		}
	}

	return fmt.Errorf("authorize: role %q: %w", id.Role, ErrForbidden)
}
