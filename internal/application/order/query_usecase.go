package order

import (
	"context"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/phone"
)

// defaultEventLimit borne du flux d'événements du personnel.
const defaultEventLimit = 50

// QueryUseCase lectures du cycle de vie : commande, historique, suivi, flux
// d'événements du personnel.
type QueryUseCase struct {
	orders      repository.OrderRepository
	events      repository.OrderEventRepository
	countryCode string
}

// NewQueryUseCase construit le cas d'usage de lecture.
func NewQueryUseCase(orders repository.OrderRepository, events repository.OrderEventRepository, countryCode string) *QueryUseCase {
	return &QueryUseCase{orders: orders, events: events, countryCode: countryCode}
}

// GetOrder retourne une commande visible par l'appelant.
func (uc *QueryUseCase) GetOrder(ctx context.Context, actor identity.Identity, orderID string) (*dto.OrderResponse, error) {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.Can(actor, o, domorder.ActionView) {
		return nil, domain.ErrForbidden
	}
	resp := dto.ToOrderResponse(o)
	return &resp, nil
}

// Historique commandes passées de l'appelant (panier exclu), plus récentes
// d'abord. Un anonyme présente son numéro.
func (uc *QueryUseCase) Historique(ctx context.Context, actor identity.Identity, rawPhone string) ([]dto.OrderResponse, error) {
	var key repository.PanierKey
	switch {
	case actor.IsAuthenticated():
		key = repository.PanierKey{UserID: actor.UserID}
	default:
		if actor.Kind == identity.PhoneOnly && rawPhone == "" {
			rawPhone = actor.Phone
		}
		normalized := phone.Normalize(rawPhone, uc.countryCode)
		if normalized == "" {
			return nil, domain.NewValidationError("phone", "numéro de téléphone requis")
		}
		key = repository.PanierKey{Phone: normalized}
	}

	ordersList, err := uc.orders.ListHistory(key)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(ordersList))
	for _, o := range ordersList {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// Suivi suivi détaillé d'une commande : historique réel des transitions et
// estimation du temps restant selon le statut courant.
func (uc *QueryUseCase) Suivi(ctx context.Context, actor identity.Identity, orderID string) (*dto.TrackingResponse, error) {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.Can(actor, o, domorder.ActionView) {
		return nil, domain.ErrForbidden
	}

	events, err := uc.events.ListByOrder(o.ID)
	if err != nil {
		return nil, err
	}
	history := make([]dto.StatusHistoryEntry, 0, len(events))
	for _, ev := range events {
		history = append(history, dto.StatusHistoryEntry{
			Status:    ev.ToStatus,
			Timestamp: ev.CreatedAt,
			Message:   domorder.StatusMessage(ev.ToStatus),
		})
	}

	resp := &dto.TrackingResponse{
		Order:         dto.ToOrderResponse(o),
		StatusHistory: history,
	}
	if minutes, ok := domorder.EstimatedMinutes(o.Status); ok {
		resp.EstimatedMinutes = &minutes
	}
	return resp, nil
}

// ListOrders commandes du périmètre du personnel, plus récentes d'abord. Un
// membre affilié à un restaurant ne voit que ce restaurant ; un admin sans
// affiliation voit tout.
func (uc *QueryUseCase) ListOrders(ctx context.Context, actor identity.Identity, limit int) ([]dto.OrderResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = defaultEventLimit
	}
	ordersList, err := uc.orders.ListByRestaurant(actor.RestaurantID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(ordersList))
	for _, o := range ordersList {
		out = append(out, dto.ToOrderResponse(o))
	}
	return out, nil
}

// ListEvents flux des changements de statut pour le personnel, plus récents
// d'abord, borné.
func (uc *QueryUseCase) ListEvents(ctx context.Context, actor identity.Identity, limit int) ([]dto.OrderEventResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = defaultEventLimit
	}
	events, err := uc.events.ListByRestaurant(actor.RestaurantID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.ToOrderEventResponse(ev))
	}
	return out, nil
}
