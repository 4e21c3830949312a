// Package services holds the business logic of the placement portal.
//
// Services defined in this package:
//   - AuthService: registration, email verification, login and sessions
//   - StudentService: student profile, academics, experience and documents
//   - JobService: job listings, eligibility and applications for students
//   - CompanyService: company profile and job announcement forms
//   - ApplicationService: application round progression
//   - VerificationService: admin review of students, companies and JAFs
//   - AdminService: listings, exports, deactivation, activity log, dashboard
//   - SuperAdminService: administrator accounts and system settings
//   - UploadService: file uploads to blob storage
package services

import (
	"context"

	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/websocket"
)

// Notifier pushes real-time notifications to connected users
type Notifier interface {
	Notify(userID int64, n websocket.Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(int64, websocket.Notification) {}

// NopNotifier discards notifications
var NopNotifier Notifier = nopNotifier{}

// newLogEntry builds an activity log row for a mutation made by actor
func newLogEntry(actor models.Actor, action string, entity models.EntityType, entityID int64, details map[string]interface{}) *models.ActivityLog {
	entry := &models.ActivityLog{
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		Action:      action,
		EntityType:  entity,
		Details:     details,
	}
	if entityID != 0 {
		id := entityID
		entry.EntityID = &id
	}
	if actor.IPAddress != "" {
		ip := actor.IPAddress
		entry.IPAddress = &ip
	}
	return entry
}

// detached keeps request values but outlives the request, for work done
// after the response such as sending emails.
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
