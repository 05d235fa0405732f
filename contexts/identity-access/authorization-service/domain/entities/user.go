package entities

import "strings"

type Role string

const (
	RoleNone       Role = "none"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps stored values onto the role set; anything unknown is none.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleInstructor:
		return RoleInstructor
	default:
		return RoleNone
	}
}

type User struct {
	ID    string
	Name  string
	Email string
	Photo string
	Role  Role
}
