package services

import "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"

// Permits reports whether a stored role satisfies a required role.
// Roles are not hierarchical: an admin is not implicitly an instructor.
func Permits(stored entities.Role, required entities.Role) bool {
	if required == entities.RoleNone {
		return false
	}
	return stored == required
}

// Assignable lists the roles an admin may grant.
func Assignable(role entities.Role) bool {
	return role == entities.RoleAdmin || role == entities.RoleInstructor
}
