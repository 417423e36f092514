package domain

import "strings"

// Role is the closed set of user roles.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUnitKerja  Role = "UNIT_KERJA"
	RoleBSP        Role = "BSP"
	RoleKKF        Role = "KKF"
	RoleDAU        Role = "DAU"
)

var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleUnitKerja, RoleBSP, RoleKKF, RoleDAU}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUnitKerja, RoleBSP, RoleKKF, RoleDAU:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts any casing and surrounding whitespace.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Actor identifies the caller of a workflow operation. It is built from
// verified token claims and passed explicitly into every service call.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) Valid() bool {
	return a.UserID > 0 && a.Role.Valid()
}
