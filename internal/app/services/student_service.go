package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/auth"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/repositories"
	"github.com/tpcell/portal/internal/app/workflow"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/filestorage"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

// StudentService manages the profile of the signed in student
type StudentService struct {
	tx          db.Transactor
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	authz       *auth.AuthorizationService
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	tx db.Transactor,
	repos *repositories.Repositories,
	authz *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		tx:          tx,
		userRepo:    repos.UserRepository,
		studentRepo: repos.StudentRepository,
		authz:       authz,
		storage:     storage,
		logger:      logger,
	}
}

// GetProfile returns the complete record of the student behind userID
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileResponse, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, student)
}

// GetProfileByID returns the complete record of a student for staff
func (s *StudentService) GetProfileByID(ctx context.Context, studentID int64) (*dto.StudentProfileResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, student)
}

func (s *StudentService) profileOf(ctx context.Context, student *models.Student) (*dto.StudentProfileResponse, error) {
	academics, err := s.studentRepo.GetAcademics(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	personal, err := s.studentRepo.GetPersonalDetails(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	experience, err := s.studentRepo.ListExperience(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	documents, err := s.studentRepo.ListDocuments(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentProfileResponse{
		Student:         student,
		Academics:       academics,
		PersonalDetails: personal,
		Experience:      experience,
		Documents:       documents,
	}, nil
}

// UpdateProfile changes the names and editable student columns together
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*models.Student, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	student.Phone = helpers.NullableString(req.Phone)
	student.Branch = strings.TrimSpace(req.Branch)
	student.Degree = strings.ToUpper(strings.TrimSpace(req.Degree))
	student.Batch = req.Batch

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := s.userRepo.WithTx(tx).UpdateUser(ctx, userID, []models.RoleType{models.RoleStudent},
			strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), nil, nil)
		if err != nil {
			return err
		}
		return s.studentRepo.WithTx(tx).UpdateProfile(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, student.ID)
}

// GetAcademics returns the academic record, or an empty one when none exists yet
func (s *StudentService) GetAcademics(ctx context.Context, userID int64) (*models.StudentAcademics, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	academics, err := s.studentRepo.GetAcademics(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if academics == nil {
		academics = &models.StudentAcademics{StudentID: student.ID}
	}
	return academics, nil
}

// UpdateAcademics replaces the academic record
func (s *StudentService) UpdateAcademics(ctx context.Context, userID int64, req *dto.AcademicsRequest) (*models.StudentAcademics, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	academics := req.ToModel(student.ID)
	if err := s.studentRepo.UpsertAcademics(ctx, academics); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("studentID", student.ID).Msg("Academics updated")
	return academics, nil
}

// GetPersonalDetails returns the personal record, or an empty one
func (s *StudentService) GetPersonalDetails(ctx context.Context, userID int64) (*models.StudentPersonalDetails, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	details, err := s.studentRepo.GetPersonalDetails(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = &models.StudentPersonalDetails{StudentID: student.ID}
	}
	return details, nil
}

// UpdatePersonalDetails replaces the personal record
func (s *StudentService) UpdatePersonalDetails(ctx context.Context, userID int64, req *dto.PersonalDetailsRequest) (*models.StudentPersonalDetails, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dob, err := helpers.ParseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date of birth", map[string]interface{}{"dateOfBirth": err.Error()})
	}

	details := &models.StudentPersonalDetails{
		StudentID:        student.ID,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		Category:         req.Category,
		Nationality:      req.Nationality,
		FatherName:       req.FatherName,
		MotherName:       req.MotherName,
		PermanentAddress: req.PermanentAddress,
		CurrentAddress:   req.CurrentAddress,
		AlternatePhone:   req.AlternatePhone,
		LinkedInURL:      req.LinkedInURL,
		GithubURL:        req.GithubURL,
	}
	if err := s.studentRepo.UpsertPersonalDetails(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// ListExperience returns the experience entries of the student
func (s *StudentService) ListExperience(ctx context.Context, userID int64) ([]*models.StudentExperience, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.ListExperience(ctx, student.ID)
}

func experienceFromRequest(studentID int64, req *dto.ExperienceRequest) (*models.StudentExperience, error) {
	start, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid start date", map[string]interface{}{"startDate": err.Error()})
	}
	end, err := helpers.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid end date", map[string]interface{}{"endDate": err.Error()})
	}
	if end != nil && end.Before(start) {
		return nil, apperrors.NewValidationError("End date must not be before start date",
			map[string]interface{}{"endDate": "must be on or after startDate"})
	}

	return &models.StudentExperience{
		StudentID:      studentID,
		CompanyName:    strings.TrimSpace(req.CompanyName),
		Role:           strings.TrimSpace(req.Role),
		ExperienceType: req.ExperienceType,
		StartDate:      start,
		EndDate:        end,
		Description:    req.Description,
		CertificateURL: req.CertificateURL,
	}, nil
}

// AddExperience creates an experience entry
func (s *StudentService) AddExperience(ctx context.Context, userID int64, req *dto.ExperienceRequest) (*models.StudentExperience, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp, err := experienceFromRequest(student.ID, req)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.CreateExperience(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// UpdateExperience replaces an entry owned by the student
func (s *StudentService) UpdateExperience(ctx context.Context, userID, id int64, req *dto.ExperienceRequest) (*models.StudentExperience, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	exp, err := experienceFromRequest(student.ID, req)
	if err != nil {
		return nil, err
	}
	exp.ID = id
	if err := s.studentRepo.UpdateExperience(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// DeleteExperience removes an entry owned by the student
func (s *StudentService) DeleteExperience(ctx context.Context, userID, id int64) error {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.studentRepo.DeleteExperience(ctx, student.ID, id)
}

// ListDocuments returns the uploaded documents of the student
func (s *StudentService) ListDocuments(ctx context.Context, userID int64) ([]*models.StudentDocument, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.ListDocuments(ctx, student.ID)
}

// SaveDocument attaches an uploaded file, replacing an earlier file of the
// same type. The replaced file is removed from storage on a best effort basis.
func (s *StudentService) SaveDocument(ctx context.Context, userID int64, req *dto.DocumentRequest) (*models.StudentDocument, error) {
	if !workflow.IsDocumentType(req.DocumentType) {
		return nil, apperrors.NewValidationError("Unknown document type", map[string]interface{}{"documentType": req.DocumentType})
	}

	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &models.StudentDocument{
		StudentID:    student.ID,
		DocumentType: req.DocumentType,
		FileURL:      req.FileURL,
		FileName:     req.FileName,
	}
	previous, err := s.studentRepo.UpsertDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		s.removeFile(ctx, *previous)
	}
	return doc, nil
}

// DeleteDocument removes a document owned by the student and its file
func (s *StudentService) DeleteDocument(ctx context.Context, userID, id int64) error {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return err
	}
	fileURL, err := s.studentRepo.DeleteDocument(ctx, student.ID, id)
	if err != nil {
		return err
	}
	s.removeFile(ctx, fileURL)
	return nil
}

func (s *StudentService) removeFile(ctx context.Context, fileURL string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(detached(ctx), fileURL); err != nil {
		s.logger.Warn().Err(err).Str("url", fileURL).Msg("Failed to remove replaced document file")
	}
}

// DocumentRequirements returns the degree checklist with upload state
func (s *StudentService) DocumentRequirements(ctx context.Context, userID int64) ([]dto.DocumentRequirement, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.studentRepo.ListDocuments(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	uploaded := make(map[string]bool, len(docs))
	for _, d := range docs {
		uploaded[d.DocumentType] = true
	}

	reqs := workflow.DocumentRequirements(student.Degree)
	out := make([]dto.DocumentRequirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.DocumentRequirement{
			DocumentType: r.DocumentType,
			Label:        r.Label,
			Required:     r.Required,
			Uploaded:     uploaded[r.DocumentType],
		})
	}
	return out, nil
}
