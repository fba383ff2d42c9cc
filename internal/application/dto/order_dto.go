package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
)

// CartLineRequest une ligne du panier soumis.
type CartLineRequest struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

// UpsertCartRequest entrée de création/réécriture du panier. Phone n'est
// requis que pour les appelants anonymes. PrixTotal est la somme déclarée par
// le client : les prix composés sont figés, l'agrégat ne recalcule pas.
type UpsertCartRequest struct {
	Phone      string            `json:"phone,omitempty"`
	Restaurant string            `json:"restaurant"`
	Lines      []CartLineRequest `json:"lines"`
	PrixTotal  decimal.Decimal   `json:"prix_total"`
}

// OrderLineResponse ligne d'une commande.
type OrderLineResponse struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

// OrderResponse sortie d'une commande.
type OrderResponse struct {
	ID         string              `json:"id"`
	User       string              `json:"user,omitempty"`
	Phone      string              `json:"phone,omitempty"`
	Restaurant string              `json:"restaurant"`
	Status     string              `json:"status"`
	PrixTotal  decimal.Decimal     `json:"prix_total"`
	Lines      []OrderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
}

// UpsertCartResponse commande résultante plus l'indicateur de fraîcheur pour
// le mapping HTTP 201/200.
type UpsertCartResponse struct {
	Order   OrderResponse `json:"order"`
	Created bool          `json:"-"`
}

// UpdateStatusRequest entrée du changement de statut par le personnel.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderEventResponse événement du journal des statuts.
type OrderEventResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Restaurant string    `json:"restaurant,omitempty"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusHistoryEntry étape de l'historique du suivi.
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// TrackingResponse suivi détaillé d'une commande.
type TrackingResponse struct {
	Order            OrderResponse        `json:"order"`
	StatusHistory    []StatusHistoryEntry `json:"status_history"`
	EstimatedMinutes *int                 `json:"estimated_time,omitempty"`
}

// ToOrderResponse mappe l'entité vers la sortie.
func ToOrderResponse(o *entity.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{DishID: l.DishID, Quantity: l.Quantity})
	}
	return OrderResponse{
		ID:         o.ID,
		User:       o.UserID,
		Phone:      o.Phone,
		Restaurant: o.RestaurantID,
		Status:     o.Status,
		PrixTotal:  o.PrixTotal,
		Lines:      lines,
		CreatedAt:  o.CreatedAt,
	}
}

// ToOrderEventResponse mappe l'entité vers la sortie.
func ToOrderEventResponse(ev *entity.OrderEvent) OrderEventResponse {
	return OrderEventResponse{
		ID:         ev.ID,
		OrderID:    ev.OrderID,
		Restaurant: ev.RestaurantID,
		FromStatus: ev.FromStatus,
		ToStatus:   ev.ToStatus,
		CreatedAt:  ev.CreatedAt,
	}
}
