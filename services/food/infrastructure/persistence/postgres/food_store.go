// Package postgres implements the food item store against PostgreSQL.
// Mutations publish FoodChangedEvents within the same transaction as the
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
	domainevents "github.com/ghuser/liveboard/services/food/domain/events"
	"github.com/ghuser/liveboard/services/food/domain/models"
)

// sortColumns whitelists client sort fields to real columns.
var sortColumns = map[string]string{
	"name":      "name",
	"category":  "category",
	"price":     "price",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// FoodStore implements crud.Store[*models.FoodItem] against PostgreSQL.
type FoodStore struct {
	db  *database.Database
	bus *events.Bus
}

// NewFoodStore returns a FoodStore backed by the given pool and event bus.
// A nil bus disables event publication.
func NewFoodStore(db *database.Database, bus *events.Bus) *FoodStore {
	return &FoodStore{db: db, bus: bus}
}

func (s *FoodStore) List(ctx context.Context, q crud.Query) ([]*models.FoodItem, int, error) {
	q = q.Normalize()

	where := ""
	args := []any{}
	if q.Search != "" {
		where = "WHERE name ILIKE $1 OR category ILIKE $1 OR description ILIKE $1"
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
		"SELECT id, name, category, price, description, is_available, created_at, updated_at FROM food_items %s ORDER BY %s %s",
		where, orderCol, dir,
	)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
	}

	rows, err := s.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query food items: %w", err)
	}
	defer rows.Close()

	out := make([]*models.FoodItem, 0, 16)
	for rows.Next() {
		var f models.FoodItem
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Price, &f.Description, &f.IsAvailable, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan food item: %w", err)
		}
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate food items: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM food_items " + where
	if err := s.db.DB().QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count food items: %w", err)
	}
	return out, total, nil
}

func (s *FoodStore) Get(ctx context.Context, id string) (*models.FoodItem, error) {
	const q = `
SELECT id, name, category, price, description, is_available, created_at, updated_at
FROM food_items WHERE id = $1;
`
	var f models.FoodItem
	err := s.db.DB().QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.Name, &f.Category, &f.Price, &f.Description, &f.IsAvailable, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crud.ErrNotFound
		}
		return nil, fmt.Errorf("query food item: %w", err)
	}
	return &f, nil
}

func (s *FoodStore) Insert(ctx context.Context, f *models.FoodItem) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
INSERT INTO food_items (id, name, category, price, description, is_available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
		if _, err := tx.ExecContext(ctx, q, f.ID, f.Name, f.Category, f.Price, f.Description, f.IsAvailable, f.CreatedAt, f.UpdatedAt); err != nil {
			return fmt.Errorf("insert food item: %w", err)
		}
		return s.publish(tx, domainevents.TopicFoodCreated, "created", f)
	})
}

func (s *FoodStore) Update(ctx context.Context, f *models.FoodItem) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
UPDATE food_items SET name = $2, category = $3, price = $4, description = $5, is_available = $6, updated_at = $7
WHERE id = $1;
`
		res, err := tx.ExecContext(ctx, q, f.ID, f.Name, f.Category, f.Price, f.Description, f.IsAvailable, f.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update food item: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return crud.ErrNotFound
		}
		return s.publish(tx, domainevents.TopicFoodUpdated, "updated", f)
	})
}

func (s *FoodStore) Delete(ctx context.Context, id string) (*models.FoodItem, error) {
	var removed models.FoodItem
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		const q = `
DELETE FROM food_items WHERE id = $1
RETURNING id, name, category, price, description, is_available, created_at, updated_at;
`
		err := tx.QueryRowContext(ctx, q, id).
			Scan(&removed.ID, &removed.Name, &removed.Category, &removed.Price, &removed.Description, &removed.IsAvailable, &removed.CreatedAt, &removed.UpdatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return crud.ErrNotFound
			}
			return fmt.Errorf("delete food item: %w", err)
		}
		return s.publish(tx, domainevents.TopicFoodDeleted, "deleted", &removed)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func (s *FoodStore) publish(tx *sql.Tx, topic, action string, f *models.FoodItem) error {
	if s.bus == nil {
		return nil
	}
	event := domainevents.FoodChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Action:     action,
		Food:       f,
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
