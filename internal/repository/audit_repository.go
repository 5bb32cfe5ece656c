package repository

import (
	"context"
	"database/sql"
	"time"
)

// AuditEvent mirrors the 'audit_events' table.
type AuditEvent struct {
	ID         uint64
	OccurredAt time.Time
	Actor      string
	Action     string
	Detail     string
	CreatedAt  time.Time
}

type AuditRepo struct{ DB *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

// EnsureSchema creates the audit_events table when it does not exist yet.
// The service owns this table alone, so a guarded DDL statement at startup
// replaces a migration tool.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS audit_events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		occurred_at DATETIME(6) NOT NULL,
		actor VARCHAR(64) NOT NULL,
		action VARCHAR(128) NOT NULL,
		detail VARCHAR(512) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_audit_occurred_at (occurred_at)
	)`)
	return err
}

// Insert stores one audited action and returns its ID.
func (r *AuditRepo) Insert(ctx context.Context, occurredAt time.Time, actor, action, detail string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO audit_events (occurred_at, actor, action, detail) VALUES (?,?,?,?)",
		occurredAt.UTC(), actor, action, detail)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListRecent fetches the newest events first, capped at limit.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,occurred_at,actor,action,detail,created_at FROM audit_events ORDER BY occurred_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEvent
	for rows.Next() {
		var ev AuditEvent
		if err := rows.Scan(&ev.ID, &ev.OccurredAt, &ev.Actor, &ev.Action, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
