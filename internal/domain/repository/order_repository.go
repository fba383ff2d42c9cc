package repository

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// PanierKey clé d'unicité du panier ouvert : exactement un de UserID ou Phone
// est renseigné, plus le restaurant.
type PanierKey struct {
	UserID       string
	Phone        string
	RestaurantID string
}

// OrderRepository port de persistance de l'agrégat panier/commande.
// Les lectures retournent la commande avec ses lignes.
type OrderRepository interface {
	GetByID(id string) (*entity.Order, error)
	// FindPanier retourne le panier ouvert pour la clé, ou nil.
	FindPanier(key PanierKey) (*entity.Order, error)
	// UpsertPanier crée ou retrouve atomiquement le panier ouvert de la clé
	// (upsert transactionnel sur index unique partiel, jamais lecture puis
	// écriture séparées) et fixe son total. Retourne created=true à la création.
	UpsertPanier(o *entity.Order) (created bool, err error)
	// ReplaceLines détruit et recrée en bloc les lignes de la commande.
	ReplaceLines(orderID string, lines []entity.OrderLine) error
	// UpdateStatus écrit le nouveau statut à condition que le statut courant
	// soit encore celui que l'appelant a lu (compare-and-set). Retourne
	// ErrConflict si un autre écrivain est passé entre-temps.
	UpdateStatus(orderID, fromStatus, toStatus string) error
	Update(o *entity.Order) error
	Delete(id string) error
	// ListHistory commandes de l'identité hors panier, plus récentes d'abord.
	ListHistory(key PanierKey) ([]*entity.Order, error)
	// ListByRestaurant commandes d'un restaurant (restaurantID vide = toutes),
	// pour le périmètre du personnel.
	ListByRestaurant(restaurantID string, limit int) ([]*entity.Order, error)
}

// OrderEventRepository port du journal des changements de statut.
type OrderEventRepository interface {
	Create(ev *entity.OrderEvent) error
	// ListByOrder événements d'une commande, plus anciens d'abord.
	ListByOrder(orderID string) ([]*entity.OrderEvent, error)
	// ListByRestaurant flux du personnel (restaurantID vide = tous), plus
	// récents d'abord, borné par limit.
	ListByRestaurant(restaurantID string, limit int) ([]*entity.OrderEvent, error)
}
