// Package models holds the persistent entities of the placement portal.
package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleCompany    RoleType = "COMPANY"
	RoleAdmin      RoleType = "ADMIN"
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
)

// IsValid reports whether r is a known role
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to the placement cell
func (r RoleType) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// VerificationStatus is the admin review state of a student or company
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// EntityType names the subject of an activity log entry
type EntityType string

const (
	EntityStudent     EntityType = "STUDENT"
	EntityCompany     EntityType = "COMPANY"
	EntityJAF         EntityType = "JAF"
	EntityApplication EntityType = "APPLICATION"
	EntityUser        EntityType = "USER"
	EntitySettings    EntityType = "SETTINGS"
)
