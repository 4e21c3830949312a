package workflow

import "github.com/tpcell/portal/internal/app/models"

// Rounds lists application statuses in the order a candidate progresses.
var Rounds = []models.ApplicationStatus{
	models.ApplicationApplied,
	models.ApplicationResumeShortlisted,
	models.ApplicationAptitudeTest,
	models.ApplicationGroupDiscussion,
	models.ApplicationTechnicalInterview,
	models.ApplicationHRInterview,
	models.ApplicationSelected,
	models.ApplicationOfferGiven,
}

// RoundIndex returns the position of status in Rounds, or -1
func RoundIndex(status models.ApplicationStatus) int {
	for i, s := range Rounds {
		if s == status {
			return i
		}
	}
	return -1
}

// IsValidApplicationStatus reports whether status is known
func IsValidApplicationStatus(status models.ApplicationStatus) bool {
	return status == models.ApplicationRejected || RoundIndex(status) >= 0
}

// IsFinalApplicationStatus reports whether no further change is allowed
func IsFinalApplicationStatus(status models.ApplicationStatus) bool {
	return status == models.ApplicationOfferGiven || status == models.ApplicationRejected
}

// CheckApplicationTransition allows forward moves (rounds may be skipped)
// and rejection from any non-final state.
func CheckApplicationTransition(from, to models.ApplicationStatus) error {
	if !IsValidApplicationStatus(to) || IsFinalApplicationStatus(from) {
		return invalidTransition("application", from, to)
	}
	if to == models.ApplicationRejected {
		return nil
	}
	fromIdx, toIdx := RoundIndex(from), RoundIndex(to)
	if fromIdx < 0 || toIdx <= fromIdx {
		return invalidTransition("application", from, to)
	}
	return nil
}

// CurrentRound is the value stored in applications.current_round. A
// rejected application keeps the round it was rejected in.
func CurrentRound(previousRound int, status models.ApplicationStatus) int {
	if idx := RoundIndex(status); idx >= 0 {
		return idx
	}
	return previousRound
}
