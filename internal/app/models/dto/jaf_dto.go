package dto

import (
	"time"

	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

// JAFRequest creates or edits a job announcement form
type JAFRequest struct {
	FormType            models.FormType `json:"formType" binding:"required,oneof=JNF INF" example:"JNF"`
	Title               string          `json:"title" binding:"required,min=2,max=200" example:"Graduate Engineer Trainee"`
	Description         string          `json:"description" binding:"required,max=10000"`
	Location            *string         `json:"location" binding:"omitempty,max=200"`
	CTC                 *float64        `json:"ctc" binding:"omitempty,gt=0" example:"1200000"`
	Stipend             *float64        `json:"stipend" binding:"omitempty,gt=0"`
	EligibleBatches     []int           `json:"eligibleBatches" binding:"required,min=1,dive,gte=2000,lte=2100" example:"2025,2026"`
	EligibleBranches    []string        `json:"eligibleBranches" binding:"required,min=1,dive,required,max=100"`
	EligibleDegrees     []string        `json:"eligibleDegrees" binding:"required,min=1,dive,required,max=20"`
	MinCGPA             float64         `json:"minCgpa" binding:"gte=0,lte=10"`
	MaxBacklogs         *int            `json:"maxBacklogs" binding:"omitempty,gte=0"`
	SelectionProcess    []string        `json:"selectionProcess" binding:"required,min=1,dive,required,max=100"`
	ApplicationDeadline time.Time       `json:"applicationDeadline" binding:"required"`
}

// Validate checks the rules that depend on more than one field
func (r *JAFRequest) Validate(now time.Time) error {
	details := map[string]interface{}{}
	if !r.ApplicationDeadline.After(now) {
		details["applicationDeadline"] = "must be in the future"
	}
	if r.FormType == models.FormJNF && r.CTC == nil {
		details["ctc"] = "is required for a JNF"
	}
	if r.FormType == models.FormINF && r.Stipend == nil {
		details["stipend"] = "is required for an INF"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("Invalid job announcement form", details)
	}
	return nil
}

// ToModel maps the request onto a JAF
func (r *JAFRequest) ToModel(companyID int64) *models.JAF {
	batches := make([]int32, len(r.EligibleBatches))
	for i, b := range r.EligibleBatches {
		batches[i] = int32(b)
	}
	return &models.JAF{
		CompanyID:           companyID,
		FormType:            r.FormType,
		Title:               r.Title,
		Description:         r.Description,
		Location:            r.Location,
		CTC:                 r.CTC,
		Stipend:             r.Stipend,
		EligibleBatches:     batches,
		EligibleBranches:    r.EligibleBranches,
		EligibleDegrees:     r.EligibleDegrees,
		MinCGPA:             r.MinCGPA,
		MaxBacklogs:         r.MaxBacklogs,
		SelectionProcess:    r.SelectionProcess,
		ApplicationDeadline: r.ApplicationDeadline,
	}
}

// JobStatusRequest closes or cancels a job
type JobStatusRequest struct {
	JobStatus models.JobStatus `json:"jobStatus" binding:"required,oneof=CLOSED CANCELLED"`
}

// JAFReviewRequest carries optional remarks for an approval or rejection
type JAFReviewRequest struct {
	Remarks string `json:"remarks" binding:"max=2000"`
}

// BulkJAFReviewRequest approves or rejects several JAFs at once
type BulkJAFReviewRequest struct {
	IDs     []int64 `json:"ids" binding:"required,min=1,max=200,dive,gt=0"`
	Action  string  `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Remarks string  `json:"remarks" binding:"max=2000"`
}

// Target returns the review status the action moves to
func (r *BulkJAFReviewRequest) Target() models.JAFStatus {
	if r.Action == "APPROVE" {
		return models.JAFApproved
	}
	return models.JAFRejected
}
