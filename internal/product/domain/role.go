package domain

import "strings"

// Role is the caller's resolved role. Unknown input maps to RoleBuyer.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
	RoleBuyer  Role = "BUYER"
)

func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSeller:
		return RoleSeller
	default:
		return RoleBuyer
	}
}

func (r Role) String() string {
	return string(r)
}
