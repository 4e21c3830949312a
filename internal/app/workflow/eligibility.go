package workflow

import (
	"fmt"
	"strings"

	"github.com/tpcell/portal/internal/app/models"
)

// Eligibility is the outcome of matching a student against a JAF
type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// CheckEligibility matches batch, branch, degree, CGPA and backlog limits.
// academics may be nil when the student has not filled them in.
func CheckEligibility(student *models.Student, academics *models.StudentAcademics, jaf *models.JAF) Eligibility {
	var reasons []string

	if !containsBatch(jaf.EligibleBatches, student.Batch) {
		reasons = append(reasons, fmt.Sprintf("batch %d is not eligible", student.Batch))
	}
	if !containsFold(jaf.EligibleBranches, student.Branch) {
		reasons = append(reasons, fmt.Sprintf("branch %s is not eligible", student.Branch))
	}
	if !containsFold(jaf.EligibleDegrees, student.Degree) {
		reasons = append(reasons, fmt.Sprintf("degree %s is not eligible", student.Degree))
	}

	if jaf.MinCGPA > 0 {
		switch {
		case academics == nil || academics.CGPA == nil:
			reasons = append(reasons, "CGPA is not on record")
		case *academics.CGPA < jaf.MinCGPA:
			reasons = append(reasons, fmt.Sprintf("CGPA %.2f is below the minimum %.2f", *academics.CGPA, jaf.MinCGPA))
		}
	}

	if jaf.MaxBacklogs != nil && academics != nil && academics.ActiveBacklogs > *jaf.MaxBacklogs {
		reasons = append(reasons, fmt.Sprintf("%d active backlogs exceed the limit of %d", academics.ActiveBacklogs, *jaf.MaxBacklogs))
	}

	return Eligibility{Eligible: len(reasons) == 0, Reasons: reasons}
}

func containsBatch(batches []int32, batch int) bool {
	for _, b := range batches {
		if int(b) == batch {
			return true
		}
	}
	return false
}

// "ALL" in a JAF list matches any value.
func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) || strings.EqualFold(candidate, "ALL") {
			return true
		}
	}
	return false
}
