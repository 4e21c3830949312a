package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/helpers"
	"github.com/tpcell/portal/internal/pkg/logger"
)

var companyColumns = []string{
	"c.id", "c.user_id", "c.name", "c.website", "c.industry", "c.is_email_verified",
	"c.is_verified_by_admin", "c.verification_status", "c.rejection_reason", "c.verified_by",
	"c.verified_at", "c.created_at", "c.updated_at",
	"u.email", "u.first_name", "u.last_name", "u.is_active",
}

func scanCompany(row rowScanner) (*models.Company, error) {
	c := &models.Company{User: &models.User{}}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Website, &c.Industry, &c.IsEmailVerified,
		&c.IsVerifiedByAdmin, &c.VerificationStatus, &c.RejectionReason, &c.VerifiedBy,
		&c.VerifiedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.User.Email, &c.User.FirstName, &c.User.LastName, &c.User.IsActive)
	if err != nil {
		return nil, err
	}
	c.User.ID = c.UserID
	c.User.RoleType = models.RoleCompany
	return c, nil
}

// CompanyRepository handles companies and company_details
type CompanyRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(conn db.DBTX) *CompanyRepository {
	return &CompanyRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *CompanyRepository) WithTx(tx pgx.Tx) *CompanyRepository {
	return &CompanyRepository{db: tx, sb: r.sb}
}

// Create inserts a company and its empty details row
func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("user_id", "name", "website", "industry").
		Values(c.UserID, c.Name, c.Website, c.Industry).
		Suffix("RETURNING id, verification_status, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.VerificationStatus, &c.CreatedAt, &c.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", c.UserID).Msg("Error creating company")
		return fmt.Errorf("error creating company: %w", err)
	}

	detailsSQL, detailsArgs, err := r.sb.Insert("company_details").
		Columns("company_id").
		Values(c.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company details query: %w", err)
	}
	if _, err := r.db.Exec(ctx, detailsSQL, detailsArgs...); err != nil {
		return fmt.Errorf("error creating company details: %w", err)
	}
	return nil
}

func (r *CompanyRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Company, error) {
	sql, args, err := r.sb.Select(companyColumns...).
		From("companies c").
		Join("users u ON u.id = c.user_id").
		Where(where).
		Where("u.deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	c, err := scanCompany(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		logger.Error().Err(err).Msg("Error scanning company row")
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}
	return c, nil
}

// GetByID retrieves a live company by id
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

// GetByUserID retrieves the company of a user
func (r *CompanyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	return r.getOne(ctx, squirrel.Eq{"c.user_id": userID})
}

// UpdateProfile changes the name, website and industry
func (r *CompanyRepository) UpdateProfile(ctx context.Context, c *models.Company) error {
	sql, args, err := r.sb.Update("companies").
		Set("name", c.Name).
		Set("website", c.Website).
		Set("industry", c.Industry).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("companyID", c.ID).Msg("Error updating company")
		return fmt.Errorf("error updating company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// GetDetails returns the profile details, or nil when none exist
func (r *CompanyRepository) GetDetails(ctx context.Context, companyID int64) (*models.CompanyDetails, error) {
	sql, args, err := r.sb.Select("company_id", "company_type", "sector", "description", "address",
		"hr_name", "hr_email", "hr_phone", "alternate_hr_name", "alternate_hr_email", "alternate_hr_phone",
		"logo_url", "updated_at").
		From("company_details").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company details query: %w", err)
	}

	d := &models.CompanyDetails{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&d.CompanyID, &d.CompanyType, &d.Sector, &d.Description,
		&d.Address, &d.HRName, &d.HREmail, &d.HRPhone, &d.AlternateHRName, &d.AlternateHREmail,
		&d.AlternateHRPhone, &d.LogoURL, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving company details: %w", err)
	}
	return d, nil
}

// UpsertDetails creates or replaces the profile details
func (r *CompanyRepository) UpsertDetails(ctx context.Context, d *models.CompanyDetails) error {
	sql, args, err := r.sb.Insert("company_details").
		Columns("company_id", "company_type", "sector", "description", "address", "hr_name", "hr_email",
			"hr_phone", "alternate_hr_name", "alternate_hr_email", "alternate_hr_phone", "logo_url").
		Values(d.CompanyID, d.CompanyType, d.Sector, d.Description, d.Address, d.HRName, d.HREmail,
			d.HRPhone, d.AlternateHRName, d.AlternateHREmail, d.AlternateHRPhone, d.LogoURL).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			company_type = EXCLUDED.company_type, sector = EXCLUDED.sector,
			description = EXCLUDED.description, address = EXCLUDED.address, hr_name = EXCLUDED.hr_name,
			hr_email = EXCLUDED.hr_email, hr_phone = EXCLUDED.hr_phone,
			alternate_hr_name = EXCLUDED.alternate_hr_name, alternate_hr_email = EXCLUDED.alternate_hr_email,
			alternate_hr_phone = EXCLUDED.alternate_hr_phone, logo_url = EXCLUDED.logo_url, updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert company details query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&d.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("companyID", d.CompanyID).Msg("Error saving company details")
		return fmt.Errorf("error saving company details: %w", err)
	}
	return nil
}

// List returns companies matching f, newest first
func (r *CompanyRepository) List(ctx context.Context, f models.CompanyFilter) ([]*models.Company, int64, error) {
	where := squirrel.And{squirrel.Expr("u.deleted_at IS NULL")}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"c.verification_status": *f.Status})
	}
	if f.Search != "" {
		pattern := helpers.LikePattern(f.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.industry": pattern},
			squirrel.ILike{"u.email": pattern},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("companies c").
		Join("users u ON u.id = c.user_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count companies query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting companies: %w", err)
	}

	q := r.sb.Select(companyColumns...).
		From("companies c").
		Join("users u ON u.id = c.user_id").
		Where(where).
		OrderBy("c.created_at DESC", "c.id DESC").
		Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing companies")
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

// LockStatuses locks the given companies for update and returns the current
// verification status of each one found.
func (r *CompanyRepository) LockStatuses(ctx context.Context, ids []int64) (map[int64]models.VerificationStatus, error) {
	sql, args, err := r.sb.Select("c.id", "c.verification_status").
		From("companies c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Expr("c.id = ANY(?)", ids)).
		Where("u.deleted_at IS NULL").
		Suffix("FOR UPDATE OF c").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock companies query: %w", err)
	}
	return scanStatuses[models.VerificationStatus](ctx, r.db, sql, args)
}

// SetVerification moves every company in ids to status in one statement
func (r *CompanyRepository) SetVerification(ctx context.Context, ids []int64, status models.VerificationStatus, adminID int64, remarks *string) (int64, error) {
	return setVerification(ctx, r.db, r.sb, "companies", ids, status, adminID, remarks)
}

// Recipients returns the contact of each company in ids
func (r *CompanyRepository) Recipients(ctx context.Context, ids []int64) ([]models.Recipient, error) {
	sql, args, err := r.sb.Select("c.id", "u.id", "u.email", "c.name").
		From("companies c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Expr("c.id = ANY(?)", ids)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company recipients query: %w", err)
	}
	return scanRecipients(ctx, r.db, sql, args)
}
