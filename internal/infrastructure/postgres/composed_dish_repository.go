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

var _ repository.ComposedDishRepository = (*ComposedDishRepo)(nil)

// ComposedDishRepo plats composés sur PostgreSQL (pool ou tx). Les ingrédients
// sont stockés en text[] : l'instantané est immuable, pas besoin de jointure.
type ComposedDishRepo struct {
	q Querier
}

// NewComposedDishRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewComposedDishRepository(q Querier) *ComposedDishRepo {
	return &ComposedDishRepo{q: q}
}

const dishColumns = `id, base_nom, ingredient_ids, coalesce(user_id, ''), prix, created_at`

// Create persiste un plat composé.
func (r *ComposedDishRepo) Create(d *entity.ComposedDish) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO composed_dishes (id, base_nom, ingredient_ids, user_id, prix, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.BaseNom, d.IngredientIDs, nullable(d.UserID), d.Prix, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert composed dish: %w", err)
	}
	return nil
}

// GetByID lit un plat composé par identifiant.
func (r *ComposedDishRepo) GetByID(id string) (*entity.ComposedDish, error) {
	var d entity.ComposedDish
	err := r.q.QueryRow(context.Background(),
		`SELECT `+dishColumns+` FROM composed_dishes WHERE id = $1`, id,
	).Scan(&d.ID, &d.BaseNom, &d.IngredientIDs, &d.UserID, &d.Prix, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get composed dish: %w", err)
	}
	return &d, nil
}

// GetByIDs lit un lot de plats composés. Les identifiants inconnus sont
// absents du résultat : l'appelant compare les longueurs.
func (r *ComposedDishRepo) GetByIDs(ids []string) ([]*entity.ComposedDish, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+dishColumns+` FROM composed_dishes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list composed dishes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComposedDish
	for rows.Next() {
		var d entity.ComposedDish
		if err := rows.Scan(&d.ID, &d.BaseNom, &d.IngredientIDs, &d.UserID, &d.Prix, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan composed dish: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
