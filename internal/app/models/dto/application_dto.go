package dto

import "github.com/tpcell/portal/internal/app/models"

// ApplicationStatusRequest moves an application to another round
type ApplicationStatusRequest struct {
	Status  models.ApplicationStatus `json:"status" binding:"required,applicationstatus" example:"TECHNICAL_INTERVIEW"`
	Remarks *string                  `json:"remarks" binding:"omitempty,max=2000"`
}
