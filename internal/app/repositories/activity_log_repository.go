package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/db"
	"github.com/tpcell/portal/internal/pkg/logger"
)

// ActivityLogRepository appends to and reads the audit trail. There is no
// update or delete path.
type ActivityLogRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(conn db.DBTX) *ActivityLogRepository {
	return &ActivityLogRepository{db: conn, sb: newBuilder()}
}

// WithTx returns a copy bound to tx
func (r *ActivityLogRepository) WithTx(tx pgx.Tx) *ActivityLogRepository {
	return &ActivityLogRepository{db: tx, sb: r.sb}
}

// Insert writes all entries in a single multi-row statement
func (r *ActivityLogRepository) Insert(ctx context.Context, entries ...*models.ActivityLog) error {
	if len(entries) == 0 {
		return nil
	}

	q := r.sb.Insert("activity_logs").
		Columns("actor_user_id", "actor_role", "action", "entity_type", "entity_id", "details", "ip_address")
	for _, e := range entries {
		q = q.Values(e.ActorUserID, e.ActorRole, e.Action, e.EntityType, e.EntityID, e.Details, e.IPAddress)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert activity log query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int("entries", len(entries)).Str("action", entries[0].Action).Msg("Error writing activity log")
		return fmt.Errorf("error writing activity log: %w", err)
	}
	return nil
}

// List returns log entries matching f, newest first
func (r *ActivityLogRepository) List(ctx context.Context, f models.ActivityLogFilter) ([]*models.ActivityLog, int64, error) {
	where := squirrel.And{}
	if f.Action != "" {
		where = append(where, squirrel.Eq{"l.action": f.Action})
	}
	if f.ActorUserID != nil {
		where = append(where, squirrel.Eq{"l.actor_user_id": *f.ActorUserID})
	}
	if f.EntityType != nil {
		where = append(where, squirrel.Eq{"l.entity_type": *f.EntityType})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("activity_logs l").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count activity logs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting activity logs: %w", err)
	}

	q := r.sb.Select("l.id", "l.actor_user_id", "l.actor_role", "u.email", "l.action", "l.entity_type",
		"l.entity_id", "l.details", "l.ip_address", "l.created_at").
		From("activity_logs l").
		Join("users u ON u.id = l.actor_user_id").
		Where(where).
		OrderBy("l.created_at DESC", "l.id DESC").
		Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list activity logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing activity logs")
		return nil, 0, fmt.Errorf("error listing activity logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.ActivityLog{}
	for rows.Next() {
		l := &models.ActivityLog{}
		if err := rows.Scan(&l.ID, &l.ActorUserID, &l.ActorRole, &l.ActorEmail, &l.Action, &l.EntityType,
			&l.EntityID, &l.Details, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning activity log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
