package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

var _ repository.BaseRepository = (*BaseRepo)(nil)

// BaseRepo implémentation de BaseRepository sur PostgreSQL (pool ou tx).
type BaseRepo struct {
	q Querier
}

// NewBaseRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

const baseColumns = `id, nom, prix, coalesce(description, ''), coalesce(restaurant_id, ''), disponible, created_at, updated_at`

// GetByID lit une base par identifiant.
func (r *BaseRepo) GetByID(id string) (*entity.Base, error) {
	var b entity.Base
	err := r.q.QueryRow(context.Background(),
		`SELECT `+baseColumns+` FROM bases WHERE id = $1`, id,
	).Scan(&b.ID, &b.Nom, &b.Prix, &b.Description, &b.RestaurantID, &b.Disponible, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get base: %w", err)
	}
	return &b, nil
}

// ListByRestaurant bases propres à un restaurant.
func (r *BaseRepo) ListByRestaurant(restaurantID string) ([]*entity.Base, error) {
	return r.list(`restaurant_id = $1`, restaurantID)
}

// ListGlobal bases du catalogue partagé (sans restaurant).
func (r *BaseRepo) ListGlobal() ([]*entity.Base, error) {
	return r.list(`restaurant_id IS NULL`)
}

// ListAll catalogue complet.
func (r *BaseRepo) ListAll() ([]*entity.Base, error) {
	return r.list(`true`)
}

func (r *BaseRepo) list(where string, args ...any) ([]*entity.Base, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+baseColumns+` FROM bases WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Nom, &b.Prix, &b.Description, &b.RestaurantID, &b.Disponible, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
