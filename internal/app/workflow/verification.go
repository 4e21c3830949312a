// Package workflow holds the status machines of the placement process:
// account verification, JAF review, job status and application rounds.
package workflow

import (
	"fmt"

	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

func invalidTransition(kind string, from, to interface{}) error {
	return apperrors.NewCustomError(apperrors.ErrInvalidTransition,
		fmt.Sprintf("cannot move %s from %v to %v", kind, from, to)).
		WithCode("INVALID_TRANSITION")
}

// CheckVerificationTransition validates an admin decision on a student or
// company. A rejected account can be re-reviewed and verified; a verified
// account cannot be rejected or verified again.
func CheckVerificationTransition(from, to models.VerificationStatus) error {
	switch {
	case from == models.VerificationPending && (to == models.VerificationVerified || to == models.VerificationRejected):
		return nil
	case from == models.VerificationRejected && to == models.VerificationVerified:
		return nil
	}
	return invalidTransition("verification", from, to)
}

// VerificationAction returns the activity log action for a decision
func VerificationAction(entity models.EntityType, to models.VerificationStatus) string {
	switch {
	case entity == models.EntityStudent && to == models.VerificationVerified:
		return models.ActionStudentVerification
	case entity == models.EntityStudent:
		return models.ActionStudentRejection
	case to == models.VerificationVerified:
		return models.ActionCompanyVerification
	default:
		return models.ActionCompanyRejection
	}
}
