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

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implémentation de MenuItemRepository sur PostgreSQL (pool ou tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

const menuItemColumns = `id, nom, prix, type, coalesce(restaurant_id, ''), coalesce(description, ''), calories, temps_preparation, disponible, populaire, plat_du_jour, created_at, updated_at`

// GetByID lit un plat du menu par identifiant.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := scanMenuItem(r.q.QueryRow(context.Background(),
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

// ListByRestaurant plats propres à un restaurant.
func (r *MenuItemRepo) ListByRestaurant(restaurantID string) ([]*entity.MenuItem, error) {
	return r.list(`restaurant_id = $1`, restaurantID)
}

// ListGlobal plats du catalogue partagé (sans restaurant).
func (r *MenuItemRepo) ListGlobal() ([]*entity.MenuItem, error) {
	return r.list(`restaurant_id IS NULL`)
}

// ListAll catalogue complet.
func (r *MenuItemRepo) ListAll() ([]*entity.MenuItem, error) {
	return r.list(`true`)
}

// SetDisponible écrit le drapeau de disponibilité.
func (r *MenuItemRepo) SetDisponible(id string, disponible bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE menu_items SET disponible = $2, updated_at = now() WHERE id = $1`,
		id, disponible,
	)
	if err != nil {
		return fmt.Errorf("update menu item disponibilite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetPlatDuJour plat du jour disponible d'un restaurant.
func (r *MenuItemRepo) GetPlatDuJour(restaurantID string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := scanMenuItem(r.q.QueryRow(context.Background(),
		`SELECT `+menuItemColumns+` FROM menu_items
		 WHERE restaurant_id = $1 AND plat_du_jour AND disponible
		 ORDER BY updated_at DESC LIMIT 1`, restaurantID), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get plat du jour: %w", err)
	}
	return &m, nil
}

func (r *MenuItemRepo) list(where string, args ...any) ([]*entity.MenuItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+menuItemColumns+` FROM menu_items WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMenuItem(row rowScanner, m *entity.MenuItem) error {
	return row.Scan(
		&m.ID, &m.Nom, &m.Prix, &m.Type, &m.RestaurantID, &m.Description,
		&m.Calories, &m.TempsPreparation, &m.Disponible, &m.Populaire, &m.PlatDuJour,
		&m.CreatedAt, &m.UpdatedAt,
	)
}
