// Package postgres implements the user store against PostgreSQL.
// Mutations publish UserChangedEvents within the same transaction as the
// write.
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

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/database"
	"github.com/ghuser/liveboard/pkg/events"
	domainevents "github.com/ghuser/liveboard/services/user/domain/events"
	"github.com/ghuser/liveboard/services/user/domain/models"
)

// sortColumns whitelists client sort fields to real columns.
var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// UserStore implements crud.Store[*models.User] against PostgreSQL.
type UserStore struct {
	db  *database.Database
	bus *events.Bus
}

// NewUserStore returns a UserStore backed by the given pool and event bus.
// A nil bus disables event publication.
func NewUserStore(db *database.Database, bus *events.Bus) *UserStore {
	return &UserStore{db: db, bus: bus}
}

func (s *UserStore) List(ctx context.Context, q crud.Query) ([]*models.User, int, error) {
	q = q.Normalize()

	where := ""
	args := []any{}
	if q.Search != "" {
		where = "WHERE name ILIKE $1 OR email ILIKE $1"
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
		"SELECT id, name, email, age, created_at, updated_at FROM users %s ORDER BY %s %s",
		where, orderCol, dir,
	)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
	}

	rows, err := s.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := make([]*models.User, 0, 16)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM users " + where
	if err := s.db.DB().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return out, total, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	const q = `
SELECT id, name, email, age, created_at, updated_at
FROM users WHERE id = $1;
`
	var u models.User
	err := s.db.DB().QueryRowContext(ctx, q, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crud.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
INSERT INTO users (id, name, email, age, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
		if _, err := tx.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.Age, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return s.publish(tx, domainevents.TopicUserCreated, "created", u)
	})
}

func (s *UserStore) Update(ctx context.Context, u *models.User) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
UPDATE users SET name = $2, email = $3, age = $4, updated_at = $5
WHERE id = $1;
`
		res, err := tx.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.Age, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return crud.ErrNotFound
		}
		return s.publish(tx, domainevents.TopicUserUpdated, "updated", u)
	})
}

func (s *UserStore) Delete(ctx context.Context, id string) (*models.User, error) {
	var removed models.User
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
DELETE FROM users WHERE id = $1
RETURNING id, name, email, age, created_at, updated_at;
`
		err := tx.QueryRowContext(ctx, q, id).
			Scan(&removed.ID, &removed.Name, &removed.Email, &removed.Age, &removed.CreatedAt, &removed.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return crud.ErrNotFound
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return s.publish(tx, domainevents.TopicUserDeleted, "deleted", &removed)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *UserStore) publish(tx *sql.Tx, topic, action string, u *models.User) error {
	if s.bus == nil {
		return nil
	}
	event := domainevents.UserChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Action:     action,
		User:       u,
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
