// Package audit implements the audit log repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

const columns = "id, user_id, entity_type, entity_id, action, changes, created_at"

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	UserID     *uuid.UUID `db:"user_id"`
	EntityType string     `db:"entity_type"`
	EntityID   uuid.UUID  `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO audit_log (id, user_id, entity_type, entity_id, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	changes := record.Changes
	if changes == nil {
		changes = map[string]any{}
	}
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
	}

	var rw row
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, createSQL,
		record.ID, record.UserID, string(record.EntityType), record.EntityID,
		string(record.Action), changesJSON, record.CreatedAt,
	)
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return toDomain(rw)
}

// Log creates an audit record without returning it.
// Satisfies the auditLogger interface of every service.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByEntitySQL = `
SELECT ` + columns + ` FROM audit_log
 WHERE entity_type = $1 AND entity_id = $2
 ORDER BY created_at DESC
 LIMIT $3`

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, getByEntitySQL,
		string(entityType), entityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by entity: %w", err)
	}
	return toDomainList(rows)
}

const getByUserSQL = `
SELECT ` + columns + ` FROM audit_log
 WHERE user_id = $1
 ORDER BY created_at DESC
 LIMIT $2 OFFSET $3`

// GetByUser returns audit log records for a user, ordered by created_at DESC
// with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, getByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get audit_records by user: %w", err)
	}
	return toDomainList(rows)
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomain(rw row) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         rw.ID,
		UserID:     rw.UserID,
		EntityType: domain.EntityType(rw.EntityType),
		EntityID:   rw.EntityID,
		Action:     domain.AuditAction(rw.Action),
		CreatedAt:  rw.CreatedAt,
	}

	if len(rw.Changes) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(rw.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", rw.ID, err)
		}
		record.Changes = changes
	}

	return record, nil
}

func toDomainList(rows []row) ([]domain.AuditRecord, error) {
	records := make([]domain.AuditRecord, len(rows))
	for i, rw := range rows {
		rec, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}
