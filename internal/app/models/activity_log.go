package models

import "time"

// Activity actions recorded after privileged mutations.
const (
	ActionStudentVerification     = "STUDENT VERIFICATION"
	ActionStudentRejection        = "STUDENT REJECTION"
	ActionCompanyVerification     = "COMPANY VERIFICATION"
	ActionCompanyRejection        = "COMPANY REJECTION"
	ActionJAFApproval             = "JAF APPROVAL"
	ActionJAFRejection            = "JAF REJECTION"
	ActionApplicationStatusUpdate = "APPLICATION STATUS UPDATE"
	ActionAdminCreate             = "ADMIN CREATE"
	ActionAdminUpdate             = "ADMIN UPDATE"
	ActionAdminDelete             = "ADMIN DELETE"
	ActionUserDeactivation        = "USER DEACTIVATION"
	ActionSettingsUpdate          = "SETTINGS UPDATE"
)

// ActivityLog is an append-only audit record
type ActivityLog struct {
	ID          int64                  `json:"id" db:"id"`
	ActorUserID int64                  `json:"actorUserId" db:"actor_user_id"`
	ActorRole   RoleType               `json:"actorRole" db:"actor_role"`
	ActorEmail  string                 `json:"actorEmail,omitempty"`
	Action      string                 `json:"action" db:"action" example:"STUDENT VERIFICATION"`
	EntityType  EntityType             `json:"entityType" db:"entity_type"`
	EntityID    *int64                 `json:"entityId,omitempty" db:"entity_id"`
	Details     map[string]interface{} `json:"details,omitempty" db:"details"`
	IPAddress   *string                `json:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt   time.Time              `json:"createdAt" db:"created_at"`
}

// Actor identifies who performed a privileged mutation
type Actor struct {
	UserID    int64
	Role      RoleType
	IPAddress string
}

// ActivityLogFilter narrows activity log listings
type ActivityLogFilter struct {
	Action      string
	ActorUserID *int64
	EntityType  *EntityType
	Offset      uint64
	Limit       int
}
