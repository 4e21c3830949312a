package workflow

import "github.com/tpcell/portal/internal/app/models"

// CheckJAFReview allows a pending JAF to be approved or rejected exactly once.
func CheckJAFReview(from, to models.JAFStatus) error {
	if from == models.JAFPendingReview && (to == models.JAFApproved || to == models.JAFRejected) {
		return nil
	}
	return invalidTransition("JAF", from, to)
}

var jobStatusTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobOpen:   {models.JobClosed, models.JobCancelled},
	models.JobClosed: {models.JobCancelled},
}

// CheckJobStatusChange validates a company closing or cancelling a job
func CheckJobStatusChange(from, to models.JobStatus) error {
	for _, allowed := range jobStatusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return invalidTransition("job", from, to)
}

// JAFReviewAction returns the activity log action for a review decision
func JAFReviewAction(to models.JAFStatus) string {
	if to == models.JAFApproved {
		return models.ActionJAFApproval
	}
	return models.ActionJAFRejection
}

// IsJAFEditable reports whether the company may still edit the form
func IsJAFEditable(status models.JAFStatus) bool {
	return status == models.JAFPendingReview
}
