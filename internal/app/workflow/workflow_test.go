package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

func TestCheckVerificationTransition(t *testing.T) {
	cases := []struct {
		from, to models.VerificationStatus
		ok       bool
	}{
		{models.VerificationPending, models.VerificationVerified, true},
		{models.VerificationPending, models.VerificationRejected, true},
		{models.VerificationRejected, models.VerificationVerified, true},
		{models.VerificationVerified, models.VerificationRejected, false},
		{models.VerificationVerified, models.VerificationVerified, false},
		{models.VerificationRejected, models.VerificationRejected, false},
	}

	for _, tc := range cases {
		err := CheckVerificationTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestVerificationAction(t *testing.T) {
	assert.Equal(t, "STUDENT VERIFICATION", VerificationAction(models.EntityStudent, models.VerificationVerified))
	assert.Equal(t, "STUDENT REJECTION", VerificationAction(models.EntityStudent, models.VerificationRejected))
	assert.Equal(t, "COMPANY VERIFICATION", VerificationAction(models.EntityCompany, models.VerificationVerified))
	assert.Equal(t, "COMPANY REJECTION", VerificationAction(models.EntityCompany, models.VerificationRejected))
}

func TestCheckJAFReview(t *testing.T) {
	assert.NoError(t, CheckJAFReview(models.JAFPendingReview, models.JAFApproved))
	assert.NoError(t, CheckJAFReview(models.JAFPendingReview, models.JAFRejected))
	assert.Error(t, CheckJAFReview(models.JAFApproved, models.JAFRejected))
	assert.Error(t, CheckJAFReview(models.JAFRejected, models.JAFApproved))
	assert.Error(t, CheckJAFReview(models.JAFPendingReview, models.JAFPendingReview))
}

func TestCheckJobStatusChange(t *testing.T) {
	assert.NoError(t, CheckJobStatusChange(models.JobOpen, models.JobClosed))
	assert.NoError(t, CheckJobStatusChange(models.JobOpen, models.JobCancelled))
	assert.NoError(t, CheckJobStatusChange(models.JobClosed, models.JobCancelled))
	assert.Error(t, CheckJobStatusChange(models.JobClosed, models.JobOpen))
	assert.Error(t, CheckJobStatusChange(models.JobCancelled, models.JobOpen))
}

func TestCheckApplicationTransition(t *testing.T) {
	assert.NoError(t, CheckApplicationTransition(models.ApplicationApplied, models.ApplicationResumeShortlisted))
	assert.NoError(t, CheckApplicationTransition(models.ApplicationApplied, models.ApplicationTechnicalInterview), "rounds may be skipped")
	assert.NoError(t, CheckApplicationTransition(models.ApplicationHRInterview, models.ApplicationRejected))
	assert.NoError(t, CheckApplicationTransition(models.ApplicationSelected, models.ApplicationOfferGiven))

	assert.Error(t, CheckApplicationTransition(models.ApplicationTechnicalInterview, models.ApplicationAptitudeTest), "no moving back")
	assert.Error(t, CheckApplicationTransition(models.ApplicationApplied, models.ApplicationApplied))
	assert.Error(t, CheckApplicationTransition(models.ApplicationRejected, models.ApplicationSelected))
	assert.Error(t, CheckApplicationTransition(models.ApplicationOfferGiven, models.ApplicationRejected))
	assert.Error(t, CheckApplicationTransition(models.ApplicationApplied, "HIRED"))
}

func TestCurrentRound(t *testing.T) {
	assert.Equal(t, 0, CurrentRound(0, models.ApplicationApplied))
	assert.Equal(t, 4, CurrentRound(1, models.ApplicationTechnicalInterview))
	assert.Equal(t, 3, CurrentRound(3, models.ApplicationRejected))
}

func TestCheckEligibility(t *testing.T) {
	cgpa := 7.5
	maxBacklogs := 0
	jaf := &models.JAF{
		EligibleBatches:  []int32{2025, 2026},
		EligibleBranches: []string{"CSE", "ECE"},
		EligibleDegrees:  []string{"BTECH"},
		MinCGPA:          7.0,
		MaxBacklogs:      &maxBacklogs,
	}
	student := &models.Student{Batch: 2025, Branch: "cse", Degree: "BTECH"}
	academics := &models.StudentAcademics{CGPA: &cgpa}

	got := CheckEligibility(student, academics, jaf)
	assert.True(t, got.Eligible)
	assert.Empty(t, got.Reasons)

	low := 6.2
	got = CheckEligibility(&models.Student{Batch: 2024, Branch: "ME", Degree: "MTECH"},
		&models.StudentAcademics{CGPA: &low, ActiveBacklogs: 2}, jaf)
	assert.False(t, got.Eligible)
	assert.Len(t, got.Reasons, 5)

	got = CheckEligibility(student, nil, jaf)
	assert.False(t, got.Eligible)
	assert.Contains(t, got.Reasons, "CGPA is not on record")
}

func TestCheckEligibility_AllWildcard(t *testing.T) {
	jaf := &models.JAF{
		EligibleBatches:  []int32{2025},
		EligibleBranches: []string{"ALL"},
		EligibleDegrees:  []string{"ALL"},
	}
	got := CheckEligibility(&models.Student{Batch: 2025, Branch: "CIVIL", Degree: "MBA"}, nil, jaf)
	assert.True(t, got.Eligible)
}

func TestDocumentRequirements(t *testing.T) {
	ug := DocumentRequirements("btech")
	pg := DocumentRequirements("MBA")

	assert.Len(t, pg, len(ug)+1)
	assert.Equal(t, models.DocumentResume, ug[0].DocumentType)

	var hasGraduation bool
	for _, r := range pg {
		if r.DocumentType == models.DocumentGraduationMarksheet {
			hasGraduation = r.Required
		}
	}
	assert.True(t, hasGraduation)

	assert.True(t, IsDocumentType("RESUME"))
	assert.False(t, IsDocumentType("SELFIE"))
}
