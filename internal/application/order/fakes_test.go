package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/famadiop1025/Bokkdej/internal/application/notify"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

// Doubles en mémoire des ports de persistance. memOrderRepo reproduit la
// sémantique d'upsert atomique sur l'index unique partiel du panier ouvert.

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*entity.Order{}}
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &c
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *memOrderRepo) findPanierLocked(key repository.PanierKey) *entity.Order {
	for _, o := range r.orders {
		if o.Status != domorder.StatusPanier || o.RestaurantID != key.RestaurantID {
			continue
		}
		if key.UserID != "" && o.UserID == key.UserID {
			return o
		}
		if key.UserID == "" && o.UserID == "" && o.Phone == key.Phone {
			return o
		}
	}
	return nil
}

func (r *memOrderRepo) FindPanier(key repository.PanierKey) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o := r.findPanierLocked(key); o != nil {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (r *memOrderRepo) UpsertPanier(o *entity.Order) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := repository.PanierKey{UserID: o.UserID, Phone: o.Phone, RestaurantID: o.RestaurantID}
	if existing := r.findPanierLocked(key); existing != nil {
		existing.PrixTotal = o.PrixTotal
		existing.UpdatedAt = o.UpdatedAt
		*o = *cloneOrder(existing)
		return false, nil
	}
	r.orders[o.ID] = cloneOrder(o)
	return true, nil
}

func (r *memOrderRepo) ReplaceLines(orderID string, lines []entity.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Lines = append([]entity.OrderLine(nil), lines...)
	return nil
}

func (r *memOrderRepo) UpdateStatus(orderID, fromStatus, toStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if o.Status != fromStatus {
		return fmt.Errorf("update order status: statut déjà modifié par un autre écrivain: %w", domain.ErrConflict)
	}
	o.Status = toStatus
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) Update(o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *memOrderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) ListHistory(key repository.PanierKey) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.Status == domorder.StatusPanier {
			continue
		}
		if key.UserID != "" && o.UserID == key.UserID {
			out = append(out, cloneOrder(o))
		}
		if key.UserID == "" && o.UserID == "" && o.Phone == key.Phone {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByRestaurant(restaurantID string, limit int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if restaurantID == "" || o.RestaurantID == restaurantID {
			out = append(out, cloneOrder(o))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []*entity.OrderEvent
}

func (r *memEventRepo) Create(ev *entity.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *ev
	r.events = append(r.events, &c)
	return nil
}

func (r *memEventRepo) ListByOrder(orderID string) ([]*entity.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OrderEvent
	for _, ev := range r.events {
		if ev.OrderID == orderID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *memEventRepo) ListByRestaurant(restaurantID string, limit int) ([]*entity.OrderEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.OrderEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := r.events[i]
		if restaurantID == "" || ev.RestaurantID == restaurantID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) FindByPhone(p string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Phone == p {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) ListStaff(restaurantID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		switch u.Role {
		case entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef:
			if restaurantID == "" || u.RestaurantID == restaurantID {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateFCMToken(userID, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.FCMToken = token
	return nil
}

type memDishRepo struct {
	dishes map[string]*entity.ComposedDish
}

func (r *memDishRepo) Create(d *entity.ComposedDish) error {
	r.dishes[d.ID] = d
	return nil
}

func (r *memDishRepo) GetByID(id string) (*entity.ComposedDish, error) {
	d, ok := r.dishes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (r *memDishRepo) GetByIDs(ids []string) ([]*entity.ComposedDish, error) {
	var out []*entity.ComposedDish
	for _, id := range ids {
		if d, ok := r.dishes[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

type memRestaurantRepo struct {
	restaurants map[string]*entity.Restaurant
}

func (r *memRestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rest, nil
}

func (r *memRestaurantRepo) ListVisible() ([]*entity.Restaurant, error) {
	var out []*entity.Restaurant
	for _, rest := range r.restaurants {
		if rest.EstVisible() {
			out = append(out, rest)
		}
	}
	return out, nil
}

// memTxRunner exécute le callback sans transaction réelle. before, s'il est
// renseigné, s'exécute juste avant le callback : il simule un écrivain
// concurrent passé entre la lecture de l'appelant et sa transaction.
type memTxRunner struct {
	orders repository.OrderRepository
	events repository.OrderEventRepository
	calls  int
	before func()
}

func (t *memTxRunner) WithinTx(_ context.Context, fn func(r TxRepos) error) error {
	t.calls++
	if t.before != nil {
		t.before()
	}
	return fn(TxRepos{Orders: t.orders, Events: t.events})
}

// notifierSpy enregistre les diffusions demandées, de façon synchrone.
type notifierSpy struct {
	mu         sync.Mutex
	events     []notify.StatusChangedEvent
	deliveries []notify.Delivery
}

func (n *notifierSpy) Dispatch(ev notify.StatusChangedEvent, d notify.Delivery) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	n.deliveries = append(n.deliveries, d)
}

func (n *notifierSpy) smsCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, d := range n.deliveries {
		if d.SMSPhone != "" {
			count++
		}
	}
	return count
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seedDish(dishes *memDishRepo) string {
	id := uuid.NewString()
	dishes.dishes[id] = &entity.ComposedDish{ID: id, BaseNom: "Thiéboudienne"}
	return id
}
