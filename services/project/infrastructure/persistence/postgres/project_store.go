// Package postgres implements the project store against PostgreSQL.
// Mutations publish ProjectChangedEvents within the same transaction as the
// write, so the event log never diverges from the table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/database"
	"github.com/ghuser/liveboard/pkg/events"
	domainevents "github.com/ghuser/liveboard/services/project/domain/events"
	"github.com/ghuser/liveboard/services/project/domain/models"
)

// sortColumns whitelists client sort fields to real columns.
var sortColumns = map[string]string{
	"name":      "name",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ProjectStore implements crud.Store[*models.Project] against PostgreSQL.
type ProjectStore struct {
	db  *database.Database
	bus *events.Bus
}

// NewProjectStore returns a ProjectStore backed by the given pool and event
// bus. A nil bus disables event publication.
func NewProjectStore(db *database.Database, bus *events.Bus) *ProjectStore {
	return &ProjectStore{db: db, bus: bus}
}

func (s *ProjectStore) List(ctx context.Context, q crud.Query) ([]*models.Project, int, error) {
	q = q.Normalize()

	where := ""
	args := []any{}
	if q.Search != "" {
		where = "WHERE name ILIKE $1 OR description ILIKE $1"
		args = append(args, "%"+q.Search+"%")
	}

	orderCol, ok := sortColumns[q.SortBy]
	if !ok {
		orderCol = "created_at"
	}
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}

	query := fmt.Sprintf(
		"SELECT id, name, description, status, created_at, updated_at FROM projects %s ORDER BY %s %s",
		where, orderCol, dir,
	)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
	}

	rows, err := s.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Project, 0, 16)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate projects: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM projects " + where
	if err := s.db.DB().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	return out, total, nil
}

func (s *ProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	const q = `
SELECT id, name, description, status, created_at, updated_at
FROM projects WHERE id = $1;
`
	var p models.Project
	err := s.db.DB().QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crud.ErrNotFound
		}
		return nil, fmt.Errorf("query project: %w", err)
	}
	return &p, nil
}

// Insert persists a new project and publishes project.created in the same
// transaction. A unique-constraint violation on the name surfaces as a
// Conflict error.
func (s *ProjectStore) Insert(ctx context.Context, p *models.Project) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
INSERT INTO projects (id, name, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
		if _, err := tx.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Status, p.CreatedAt, p.UpdatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return crud.Conflict("A project with this title already exists")
			}
			return fmt.Errorf("insert project: %w", err)
		}
		return s.publish(tx, domainevents.TopicProjectCreated, "created", p)
	})
}

func (s *ProjectStore) Update(ctx context.Context, p *models.Project) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
UPDATE projects SET name = $2, description = $3, status = $4, updated_at = $5
WHERE id = $1;
`
		res, err := tx.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Status, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return crud.ErrNotFound
		}
		return s.publish(tx, domainevents.TopicProjectUpdated, "updated", p)
	})
}

func (s *ProjectStore) Delete(ctx context.Context, id string) (*models.Project, error) {
	var removed models.Project
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
DELETE FROM projects WHERE id = $1
RETURNING id, name, description, status, created_at, updated_at;
`
		err := tx.QueryRowContext(ctx, q, id).
			Scan(&removed.ID, &removed.Name, &removed.Description, &removed.Status, &removed.CreatedAt, &removed.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return crud.ErrNotFound
			}
			return fmt.Errorf("delete project: %w", err)
		}
		return s.publish(tx, domainevents.TopicProjectDeleted, "deleted", &removed)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *ProjectStore) publish(tx *sql.Tx, topic, action string, p *models.Project) error {
	if s.bus == nil {
		return nil
	}
	event := domainevents.ProjectChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Action:     action,
		Project:    p,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	pub, err := s.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return pub.Publish(topic, msg)
}
