package dto

import "github.com/tpcell/portal/internal/app/models"

// UpdateCompanyProfileRequest updates a company and its details
type UpdateCompanyProfileRequest struct {
	Name             string              `json:"name" binding:"required,min=2,max=200"`
	Website          *string             `json:"website" binding:"omitempty,url"`
	Industry         *string             `json:"industry" binding:"omitempty,max=100"`
	CompanyType      *models.CompanyType `json:"companyType" binding:"omitempty,oneof=PSU MNC STARTUP GOVERNMENT PRIVATE OTHER"`
	Sector           *string             `json:"sector" binding:"omitempty,max=100"`
	Description      *string             `json:"description" binding:"omitempty,max=5000"`
	Address          *string             `json:"address" binding:"omitempty,max=1000"`
	HRName           *string             `json:"hrName" binding:"omitempty,max=100"`
	HREmail          *string             `json:"hrEmail" binding:"omitempty,email"`
	HRPhone          *string             `json:"hrPhone" binding:"omitempty,max=20"`
	AlternateHRName  *string             `json:"alternateHrName" binding:"omitempty,max=100"`
	AlternateHREmail *string             `json:"alternateHrEmail" binding:"omitempty,email"`
	AlternateHRPhone *string             `json:"alternateHrPhone" binding:"omitempty,max=20"`
	LogoURL          *string             `json:"logoUrl" binding:"omitempty,max=500"`
}

// Details maps the request onto a company_details row
func (r *UpdateCompanyProfileRequest) Details(companyID int64) *models.CompanyDetails {
	return &models.CompanyDetails{
		CompanyID:        companyID,
		CompanyType:      r.CompanyType,
		Sector:           r.Sector,
		Description:      r.Description,
		Address:          r.Address,
		HRName:           r.HRName,
		HREmail:          r.HREmail,
		HRPhone:          r.HRPhone,
		AlternateHRName:  r.AlternateHRName,
		AlternateHREmail: r.AlternateHREmail,
		AlternateHRPhone: r.AlternateHRPhone,
		LogoURL:          r.LogoURL,
	}
}
