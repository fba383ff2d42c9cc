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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implémentation de OrderRepository sur PostgreSQL (pool ou tx).
//
// L'unicité du panier ouvert repose sur deux index uniques partiels :
// (user_id, restaurant_id) et (phone, restaurant_id), tous deux restreints à
// status='panier'. UpsertPanier cible l'index correspondant à la clé.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, coalesce(user_id, ''), coalesce(phone, ''), coalesce(restaurant_id, ''), status, prix_total, created_at, updated_at`

// GetByID lit une commande avec ses lignes.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.Phone, &o.RestaurantID, &o.Status, &o.PrixTotal, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// FindPanier retourne le panier ouvert de la clé, ou nil.
func (r *OrderRepo) FindPanier(key repository.PanierKey) (*entity.Order, error) {
	var (
		query string
		arg   string
	)
	if key.UserID != "" {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status = 'panier' AND user_id = $1 AND restaurant_id = $2`
		arg = key.UserID
	} else {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status = 'panier' AND user_id IS NULL AND phone = $1 AND restaurant_id = $2`
		arg = key.Phone
	}
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, arg, key.RestaurantID).Scan(
		&o.ID, &o.UserID, &o.Phone, &o.RestaurantID, &o.Status, &o.PrixTotal, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find panier: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpsertPanier crée ou retrouve atomiquement le panier ouvert de la clé et
// fixe son total. Un seul aller-retour : l'upsert cible l'index unique partiel
// et xmax distingue insertion et mise à jour.
func (r *OrderRepo) UpsertPanier(o *entity.Order) (bool, error) {
	var query string
	if o.UserID != "" {
		query = `
			INSERT INTO orders (id, user_id, phone, restaurant_id, status, prix_total, created_at, updated_at)
			VALUES ($1, $2, NULL, $3, 'panier', $4, now(), now())
			ON CONFLICT (user_id, restaurant_id) WHERE status = 'panier'
			DO UPDATE SET prix_total = EXCLUDED.prix_total, updated_at = now()
			RETURNING id, created_at, updated_at, (xmax = 0)`
	} else {
		query = `
			INSERT INTO orders (id, user_id, phone, restaurant_id, status, prix_total, created_at, updated_at)
			VALUES ($1, NULL, $2, $3, 'panier', $4, now(), now())
			ON CONFLICT (phone, restaurant_id) WHERE status = 'panier' AND user_id IS NULL
			DO UPDATE SET prix_total = EXCLUDED.prix_total, updated_at = now()
			RETURNING id, created_at, updated_at, (xmax = 0)`
	}
	key := o.UserID
	if key == "" {
		key = o.Phone
	}
	var created bool
	err := r.q.QueryRow(context.Background(), query, o.ID, key, o.RestaurantID, o.PrixTotal).Scan(
		&o.ID, &o.CreatedAt, &o.UpdatedAt, &created,
	)
	if err != nil {
		return false, fmt.Errorf("upsert panier: %w", err)
	}
	return created, nil
}

// ReplaceLines détruit et recrée en bloc les lignes de la commande.
func (r *OrderRepo) ReplaceLines(orderID string, lines []entity.OrderLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_lines (id, order_id, dish_id, quantity) VALUES ($1, $2, $3, $4)`,
			l.ID, orderID, l.DishID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// UpdateStatus écrit le nouveau statut si le statut courant est encore celui
// lu par l'appelant. Zéro ligne touchée signale un écrivain concurrent (ou une
// commande disparue) : l'appelant doit relire.
func (r *OrderRepo) UpdateStatus(orderID, fromStatus, toStatus string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		orderID, fromStatus, toStatus,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update order status: statut déjà modifié par un autre écrivain: %w", domain.ErrConflict)
	}
	return nil
}

// Update réécrit le total de la commande. Les lignes passent par ReplaceLines.
func (r *OrderRepo) Update(o *entity.Order) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET prix_total = $2, updated_at = now() WHERE id = $1`,
		o.ID, o.PrixTotal,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete supprime la commande et ses lignes (ON DELETE CASCADE).
func (r *OrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListHistory commandes de l'identité hors panier, plus récentes d'abord.
func (r *OrderRepo) ListHistory(key repository.PanierKey) ([]*entity.Order, error) {
	var (
		query string
		arg   string
	)
	if key.UserID != "" {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status <> 'panier' AND user_id = $1 ORDER BY created_at DESC`
		arg = key.UserID
	} else {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE status <> 'panier' AND user_id IS NULL AND phone = $1 ORDER BY created_at DESC`
		arg = key.Phone
	}
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	return r.collect(rows)
}

// ListByRestaurant commandes du périmètre du personnel, plus récentes d'abord.
func (r *OrderRepo) ListByRestaurant(restaurantID string, limit int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR restaurant_id = $1)
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders by restaurant: %w", err)
	}
	return r.collect(rows)
}

func (r *OrderRepo) collect(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Phone, &o.RestaurantID, &o.Status, &o.PrixTotal, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadLines(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadLines(o *entity.Order) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, dish_id, quantity FROM order_lines WHERE order_id = $1 ORDER BY id`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.DishID, &l.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}
