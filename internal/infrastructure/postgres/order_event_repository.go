package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

var _ repository.OrderEventRepository = (*OrderEventRepo)(nil)

// OrderEventRepo journal des changements de statut sur PostgreSQL (pool ou tx).
type OrderEventRepo struct {
	q Querier
}

// NewOrderEventRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewOrderEventRepository(q Querier) *OrderEventRepo {
	return &OrderEventRepo{q: q}
}

const eventColumns = `id, order_id, coalesce(restaurant_id, ''), from_status, to_status, coalesce(actor_id, ''), created_at`

// Create insère un événement de transition.
func (r *OrderEventRepo) Create(ev *entity.OrderEvent) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_events (id, order_id, restaurant_id, from_status, to_status, actor_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID, ev.OrderID, nullable(ev.RestaurantID), ev.FromStatus, ev.ToStatus, nullable(ev.ActorID), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// ListByOrder événements d'une commande, plus anciens d'abord.
func (r *OrderEventRepo) ListByOrder(orderID string) ([]*entity.OrderEvent, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+eventColumns+` FROM order_events WHERE order_id = $1 ORDER BY created_at ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	return collectEvents(rows)
}

// ListByRestaurant flux du personnel, plus récents d'abord, borné.
func (r *OrderEventRepo) ListByRestaurant(restaurantID string, limit int) ([]*entity.OrderEvent, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+eventColumns+` FROM order_events
		 WHERE ($1 = '' OR restaurant_id = $1)
		 ORDER BY created_at DESC LIMIT $2`,
		restaurantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list order events by restaurant: %w", err)
	}
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]*entity.OrderEvent, error) {
	defer rows.Close()
	var list []*entity.OrderEvent
	for rows.Next() {
		var ev entity.OrderEvent
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.RestaurantID, &ev.FromStatus, &ev.ToStatus, &ev.ActorID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}
