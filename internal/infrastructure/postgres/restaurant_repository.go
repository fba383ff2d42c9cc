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

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

// RestaurantRepo lectures des restaurants sur PostgreSQL (pool ou tx).
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

const restaurantColumns = `id, nom, coalesce(adresse, ''), coalesce(telephone, ''), coalesce(email, ''), statut, actif, coalesce(wave_payment_link, ''), created_at, updated_at`

// GetByID lit un restaurant par identifiant.
func (r *RestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.q.QueryRow(context.Background(),
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id,
	).Scan(
		&rest.ID, &rest.Nom, &rest.Adresse, &rest.Telephone, &rest.Email,
		&rest.Statut, &rest.Actif, &rest.WavePaymentLink, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

// ListVisible restaurants validés et actifs, triés par nom.
func (r *RestaurantRepo) ListVisible() ([]*entity.Restaurant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+restaurantColumns+` FROM restaurants
		 WHERE statut = 'valide' AND actif ORDER BY nom`,
	)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restaurant
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Nom, &rest.Adresse, &rest.Telephone, &rest.Email,
			&rest.Statut, &rest.Actif, &rest.WavePaymentLink, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, &rest)
	}
	return list, rows.Err()
}
