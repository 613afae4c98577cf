package models

// RoleType defines the user role type
type RoleType string

const (
	RoleDonor     RoleType = "donor"
	RoleSchoolRep RoleType = "schoolRep"
	// RoleMEC is the ministry/administrator role with read-only
	// cross-cutting visibility. Not assignable through registration.
	RoleMEC RoleType = "mec"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleDonor, RoleSchoolRep, RoleMEC:
		return true
	}
	return false
}
