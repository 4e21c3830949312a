package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/logger"
)

// GetAcademics returns the academic record, or nil when none was saved yet
func (r *StudentRepository) GetAcademics(ctx context.Context, studentID int64) (*models.StudentAcademics, error) {
	sql, args, err := r.sb.Select(
		"student_id", "tenth_percentage", "tenth_board", "tenth_year", "twelfth_percentage", "twelfth_board",
		"twelfth_year", "diploma_percentage", "graduation_percentage", "cgpa", "active_backlogs",
		"total_backlogs", "updated_at").
		From("student_academics").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academics query: %w", err)
	}

	a := &models.StudentAcademics{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.StudentID, &a.TenthPercentage, &a.TenthBoard, &a.TenthYear, &a.TwelfthPercentage, &a.TwelfthBoard,
		&a.TwelfthYear, &a.DiplomaPercentage, &a.GraduationPercentage, &a.CGPA, &a.ActiveBacklogs,
		&a.TotalBacklogs, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving academics: %w", err)
	}
	return a, nil
}

// UpsertAcademics creates or replaces the academic record
func (r *StudentRepository) UpsertAcademics(ctx context.Context, a *models.StudentAcademics) error {
	sql, args, err := r.sb.Insert("student_academics").
		Columns("student_id", "tenth_percentage", "tenth_board", "tenth_year", "twelfth_percentage",
			"twelfth_board", "twelfth_year", "diploma_percentage", "graduation_percentage", "cgpa",
			"active_backlogs", "total_backlogs").
		Values(a.StudentID, a.TenthPercentage, a.TenthBoard, a.TenthYear, a.TwelfthPercentage,
			a.TwelfthBoard, a.TwelfthYear, a.DiplomaPercentage, a.GraduationPercentage, a.CGPA,
			a.ActiveBacklogs, a.TotalBacklogs).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET
			tenth_percentage = EXCLUDED.tenth_percentage, tenth_board = EXCLUDED.tenth_board,
			tenth_year = EXCLUDED.tenth_year, twelfth_percentage = EXCLUDED.twelfth_percentage,
			twelfth_board = EXCLUDED.twelfth_board, twelfth_year = EXCLUDED.twelfth_year,
			diploma_percentage = EXCLUDED.diploma_percentage,
			graduation_percentage = EXCLUDED.graduation_percentage, cgpa = EXCLUDED.cgpa,
			active_backlogs = EXCLUDED.active_backlogs, total_backlogs = EXCLUDED.total_backlogs,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert academics query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", a.StudentID).Msg("Error saving academics")
		return fmt.Errorf("error saving academics: %w", err)
	}
	return nil
}

// GetPersonalDetails returns the personal record, or nil when none was saved yet
func (r *StudentRepository) GetPersonalDetails(ctx context.Context, studentID int64) (*models.StudentPersonalDetails, error) {
	sql, args, err := r.sb.Select(
		"student_id", "date_of_birth", "gender", "category", "nationality", "father_name", "mother_name",
		"permanent_address", "current_address", "alternate_phone", "linkedin_url", "github_url", "updated_at").
		From("student_personal_details").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get personal details query: %w", err)
	}

	p := &models.StudentPersonalDetails{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.StudentID, &p.DateOfBirth, &p.Gender, &p.Category, &p.Nationality, &p.FatherName, &p.MotherName,
		&p.PermanentAddress, &p.CurrentAddress, &p.AlternatePhone, &p.LinkedInURL, &p.GithubURL, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving personal details: %w", err)
	}
	return p, nil
}

// UpsertPersonalDetails creates or replaces the personal record
func (r *StudentRepository) UpsertPersonalDetails(ctx context.Context, p *models.StudentPersonalDetails) error {
	sql, args, err := r.sb.Insert("student_personal_details").
		Columns("student_id", "date_of_birth", "gender", "category", "nationality", "father_name",
			"mother_name", "permanent_address", "current_address", "alternate_phone", "linkedin_url", "github_url").
		Values(p.StudentID, p.DateOfBirth, p.Gender, p.Category, p.Nationality, p.FatherName,
			p.MotherName, p.PermanentAddress, p.CurrentAddress, p.AlternatePhone, p.LinkedInURL, p.GithubURL).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET
			date_of_birth = EXCLUDED.date_of_birth, gender = EXCLUDED.gender, category = EXCLUDED.category,
			nationality = EXCLUDED.nationality, father_name = EXCLUDED.father_name,
			mother_name = EXCLUDED.mother_name, permanent_address = EXCLUDED.permanent_address,
			current_address = EXCLUDED.current_address, alternate_phone = EXCLUDED.alternate_phone,
			linkedin_url = EXCLUDED.linkedin_url, github_url = EXCLUDED.github_url, updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert personal details query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", p.StudentID).Msg("Error saving personal details")
		return fmt.Errorf("error saving personal details: %w", err)
	}
	return nil
}

var experienceColumns = []string{
	"id", "student_id", "company_name", "role", "experience_type", "start_date", "end_date",
	"description", "certificate_url", "created_at", "updated_at",
}

// ListExperience returns the experience entries of a student, latest first
func (r *StudentRepository) ListExperience(ctx context.Context, studentID int64) ([]*models.StudentExperience, error) {
	sql, args, err := r.sb.Select(experienceColumns...).
		From("student_experience").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list experience query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing experience: %w", err)
	}
	defer rows.Close()

	out := []*models.StudentExperience{}
	for rows.Next() {
		e := &models.StudentExperience{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CompanyName, &e.Role, &e.ExperienceType, &e.StartDate,
			&e.EndDate, &e.Description, &e.CertificateURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning experience: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateExperience inserts an experience entry
func (r *StudentRepository) CreateExperience(ctx context.Context, e *models.StudentExperience) error {
	sql, args, err := r.sb.Insert("student_experience").
		Columns("student_id", "company_name", "role", "experience_type", "start_date", "end_date",
			"description", "certificate_url").
		Values(e.StudentID, e.CompanyName, e.Role, e.ExperienceType, e.StartDate, e.EndDate,
			e.Description, e.CertificateURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create experience query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", e.StudentID).Msg("Error creating experience")
		return fmt.Errorf("error creating experience: %w", err)
	}
	return nil
}

// UpdateExperience replaces an entry owned by e.StudentID
func (r *StudentRepository) UpdateExperience(ctx context.Context, e *models.StudentExperience) error {
	sql, args, err := r.sb.Update("student_experience").
		Set("company_name", e.CompanyName).
		Set("role", e.Role).
		Set("experience_type", e.ExperienceType).
		Set("start_date", e.StartDate).
		Set("end_date", e.EndDate).
		Set("description", e.Description).
		Set("certificate_url", e.CertificateURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID, "student_id": e.StudentID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update experience query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("Experience entry not found")
		}
		return fmt.Errorf("error updating experience: %w", err)
	}
	return nil
}

// DeleteExperience removes an entry owned by studentID
func (r *StudentRepository) DeleteExperience(ctx context.Context, studentID, id int64) error {
	sql, args, err := r.sb.Delete("student_experience").
		Where(squirrel.Eq{"id": id, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete experience query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Experience entry not found")
	}
	return nil
}

// ListDocuments returns the uploaded documents of a student
func (r *StudentRepository) ListDocuments(ctx context.Context, studentID int64) ([]*models.StudentDocument, error) {
	sql, args, err := r.sb.Select("id", "student_id", "document_type", "file_url", "file_name", "uploaded_at").
		From("student_documents").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("document_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	out := []*models.StudentDocument{}
	for rows.Next() {
		d := &models.StudentDocument{}
		if err := rows.Scan(&d.ID, &d.StudentID, &d.DocumentType, &d.FileURL, &d.FileName, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpsertDocument stores d, replacing an earlier upload of the same type.
// It returns the URL of the replaced file, if any.
func (r *StudentRepository) UpsertDocument(ctx context.Context, d *models.StudentDocument) (*string, error) {
	prevSQL, prevArgs, err := r.sb.Select("file_url").
		From("student_documents").
		Where(squirrel.Eq{"student_id": d.StudentID, "document_type": d.DocumentType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build previous document query: %w", err)
	}
	var previous *string
	var prevURL string
	switch err := r.db.QueryRow(ctx, prevSQL, prevArgs...).Scan(&prevURL); {
	case err == nil:
		if prevURL != d.FileURL {
			previous = &prevURL
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("error retrieving previous document: %w", err)
	}

	sql, args, err := r.sb.Insert("student_documents").
		Columns("student_id", "document_type", "file_url", "file_name").
		Values(d.StudentID, d.DocumentType, d.FileURL, d.FileName).
		Suffix(`ON CONFLICT (student_id, document_type) DO UPDATE SET
			file_url = EXCLUDED.file_url, file_name = EXCLUDED.file_name, uploaded_at = NOW()
			RETURNING id, uploaded_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert document query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.ID, &d.UploadedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", d.StudentID).Msg("Error saving document")
		return nil, fmt.Errorf("error saving document: %w", err)
	}
	return previous, nil
}

// DeleteDocument removes a document owned by studentID and returns its file URL
func (r *StudentRepository) DeleteDocument(ctx context.Context, studentID, id int64) (string, error) {
	sql, args, err := r.sb.Delete("student_documents").
		Where(squirrel.Eq{"id": id, "student_id": studentID}).
		Suffix("RETURNING file_url").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build delete document query: %w", err)
	}

	var fileURL string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&fileURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewResourceNotFoundError("Document not found")
		}
		return "", fmt.Errorf("error deleting document: %w", err)
	}
	return fileURL, nil
}
