package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/db"
)

// StatsRepository computes dashboard aggregates
type StatsRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(conn db.DBTX) *StatsRepository {
	return &StatsRepository{db: conn, sb: newBuilder()}
}

func (r *StatsRepository) countBy(ctx context.Context, q squirrel.SelectBuilder) (map[string]int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			key   string
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("error scanning stats: %w", err)
		}
		out[key] = count
	}
	return out, rows.Err()
}

func (r *StatsRepository) count(ctx context.Context, q squirrel.SelectBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build stats query: %w", err)
	}
	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error computing stats: %w", err)
	}
	return n, nil
}

// Dashboard computes the admin dashboard counters
func (r *StatsRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		StudentsByStatus:  map[models.VerificationStatus]int64{},
		CompaniesByStatus: map[models.VerificationStatus]int64{},
		JAFsByStatus:      map[models.JAFStatus]int64{},
		GeneratedAt:       time.Now().UTC(),
	}

	students, err := r.countBy(ctx, r.sb.Select("s.verification_status", "COUNT(*)").
		From("students s").Join("users u ON u.id = s.user_id").
		Where("u.deleted_at IS NULL").GroupBy("s.verification_status"))
	if err != nil {
		return nil, err
	}
	for k, v := range students {
		stats.StudentsByStatus[models.VerificationStatus(k)] = v
	}

	companies, err := r.countBy(ctx, r.sb.Select("c.verification_status", "COUNT(*)").
		From("companies c").Join("users u ON u.id = c.user_id").
		Where("u.deleted_at IS NULL").GroupBy("c.verification_status"))
	if err != nil {
		return nil, err
	}
	for k, v := range companies {
		stats.CompaniesByStatus[models.VerificationStatus(k)] = v
	}

	jafs, err := r.countBy(ctx, r.sb.Select("status", "COUNT(*)").From("jafs").GroupBy("status"))
	if err != nil {
		return nil, err
	}
	for k, v := range jafs {
		stats.JAFsByStatus[models.JAFStatus(k)] = v
	}

	if stats.OpenJobs, err = r.count(ctx, r.sb.Select("COUNT(*)").From("jafs").
		Where(squirrel.Eq{"status": models.JAFApproved, "job_status": models.JobOpen})); err != nil {
		return nil, err
	}
	if stats.TotalApplications, err = r.count(ctx, r.sb.Select("COUNT(*)").From("applications")); err != nil {
		return nil, err
	}
	if stats.PlacedStudents, err = r.count(ctx, r.sb.Select("COUNT(DISTINCT student_id)").From("applications").
		Where(squirrel.Eq{"status": []models.ApplicationStatus{models.ApplicationSelected, models.ApplicationOfferGiven}})); err != nil {
		return nil, err
	}

	return stats, nil
}
