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

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implémentation de IngredientRepository sur PostgreSQL, suivi
// de stock compris (pool ou tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, nom, prix, type, coalesce(restaurant_id, ''), stock_actuel, stock_min, unite, coalesce(fournisseur, ''), disponible, created_at, updated_at`

// GetByID lit un ingrédient par identifiant.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := scanIngredient(r.q.QueryRow(context.Background(),
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

// GetByIDs lit un lot d'ingrédients. Les identifiants inconnus sont absents du
// résultat : l'appelant compare les longueurs.
func (r *IngredientRepo) GetByIDs(ids []string) ([]*entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(`id = ANY($1)`, ids)
}

// ListByRestaurant ingrédients propres à un restaurant.
func (r *IngredientRepo) ListByRestaurant(restaurantID string) ([]*entity.Ingredient, error) {
	return r.list(`restaurant_id = $1`, restaurantID)
}

// ListGlobal ingrédients du catalogue partagé (sans restaurant).
func (r *IngredientRepo) ListGlobal() ([]*entity.Ingredient, error) {
	return r.list(`restaurant_id IS NULL`)
}

// ListAll catalogue complet.
func (r *IngredientRepo) ListAll() ([]*entity.Ingredient, error) {
	return r.list(`true`)
}

// UpdateStock fixe le stock disponible (action explicite du personnel).
func (r *IngredientRepo) UpdateStock(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET stock_actuel = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IngredientRepo) list(where string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+ingredientColumns+` FROM ingredients WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := scanIngredient(rows, &i); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func scanIngredient(row rowScanner, i *entity.Ingredient) error {
	return row.Scan(
		&i.ID, &i.Nom, &i.Prix, &i.Type, &i.RestaurantID,
		&i.StockActuel, &i.StockMin, &i.Unite, &i.Fournisseur,
		&i.Disponible, &i.CreatedAt, &i.UpdatedAt,
	)
}
