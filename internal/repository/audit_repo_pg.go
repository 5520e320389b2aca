package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anurakx/villadesk/internal/domain"
)

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type PGAuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) AuditRepository {
	return &PGAuditRepository{db: db}
}

func (r *PGAuditRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.QueryRow(ctx, `INSERT INTO audit_log (id, action, username, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`, entry.ID, entry.Action, entry.User, entry.Details, entry.Timestamp).
		Scan(&entry.Timestamp)
}

func (r *PGAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	rows, err := r.db.Query(ctx, `SELECT id, action, username, details, created_at FROM audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.AuditLog, 0)
	for rows.Next() {
		var e domain.AuditLog
		if err := rows.Scan(&e.ID, &e.Action, &e.User, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
