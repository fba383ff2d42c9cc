package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
	"github.com/famadiop1025/Bokkdej/pkg/phone"
)

// CartUseCase création et réécriture du panier ouvert.
//
// Invariant : au plus un panier ouvert par (identité, restaurant). La création
// passe par un upsert atomique côté stockage, jamais par lecture puis écriture
// séparées. Les lignes sont remplacées en bloc : soumettre deux fois le même
// panier n'accumule rien.
type CartUseCase struct {
	tx          TxRunner
	orders      repository.OrderRepository
	dishes      repository.ComposedDishRepository
	restaurants repository.RestaurantRepository
	countryCode string
	log         *logger.Logger
}

// NewCartUseCase construit le cas d'usage du panier.
func NewCartUseCase(
	tx TxRunner,
	orders repository.OrderRepository,
	dishes repository.ComposedDishRepository,
	restaurants repository.RestaurantRepository,
	countryCode string,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{tx: tx, orders: orders, dishes: dishes, restaurants: restaurants, countryCode: countryCode, log: log}
}

// UpsertCart crée le panier ouvert de l'appelant pour le restaurant, ou le
// retrouve et réécrit son contenu. Le total est celui déclaré par le client :
// les prix des plats composés sont figés à la composition, rien n'est
// recalculé ici. created=true quand un nouveau panier vient d'être créé.
func (uc *CartUseCase) UpsertCart(ctx context.Context, actor identity.Identity, req dto.UpsertCartRequest) (*dto.UpsertCartResponse, error) {
	key, err := uc.panierKey(actor, req.Phone, req.Restaurant)
	if err != nil {
		return nil, err
	}
	lines, err := uc.validateLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if _, err := uc.restaurants.GetByID(req.Restaurant); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("restaurant", "restaurant inconnu")
		}
		return nil, err
	}

	now := time.Now()
	o := &entity.Order{
		ID:           uuid.NewString(),
		UserID:       key.UserID,
		Phone:        key.Phone,
		RestaurantID: key.RestaurantID,
		Status:       domorder.StatusPanier,
		PrixTotal:    req.PrixTotal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Upsert et réécriture des lignes dans la même transaction : deux
	// soumissions concurrentes ne peuvent pas entrelacer leurs lignes, et un
	// échec à mi-chemin ne laisse pas un panier dont total et lignes divergent.
	var created bool
	err = uc.tx.WithinTx(ctx, func(r TxRepos) error {
		var txErr error
		created, txErr = r.Orders.UpsertPanier(o)
		if txErr != nil {
			return txErr
		}
		for i := range lines {
			lines[i].OrderID = o.ID
		}
		return r.Orders.ReplaceLines(o.ID, lines)
	})
	if err != nil {
		return nil, err
	}
	o.Lines = lines

	uc.log.Info().Str("order_id", o.ID).Bool("created", created).Int("lignes", len(lines)).Msg("panier réécrit")
	return &dto.UpsertCartResponse{Order: dto.ToOrderResponse(o), Created: created}, nil
}

// GetPanier retourne le panier ouvert de l'appelant pour le restaurant.
func (uc *CartUseCase) GetPanier(ctx context.Context, actor identity.Identity, restaurantID, rawPhone string) (*dto.OrderResponse, error) {
	key, err := uc.panierKey(actor, rawPhone, restaurantID)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.FindPanier(key)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToOrderResponse(o)
	return &resp, nil
}

// UpdateCart réécrit lignes et total d'une commande encore au statut panier.
func (uc *CartUseCase) UpdateCart(ctx context.Context, actor identity.Identity, orderID string, req dto.UpsertCartRequest) (*dto.OrderResponse, error) {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.Can(actor, o, domorder.ActionModify) {
		return nil, domain.ErrForbidden
	}
	if !domorder.IsMutable(o.Status) {
		return nil, domain.NewConflictError(o.Status, "seul un panier peut être modifié")
	}
	lines, err := uc.validateLines(req.Lines)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = o.ID
	}
	o.Lines = lines
	o.PrixTotal = req.PrixTotal
	o.UpdatedAt = time.Now()
	err = uc.tx.WithinTx(ctx, func(r TxRepos) error {
		if err := r.Orders.ReplaceLines(o.ID, lines); err != nil {
			return err
		}
		return r.Orders.Update(o)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToOrderResponse(o)
	return &resp, nil
}

// DeleteCart supprime une commande encore au statut panier.
func (uc *CartUseCase) DeleteCart(ctx context.Context, actor identity.Identity, orderID string) error {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return err
	}
	if !domorder.Can(actor, o, domorder.ActionModify) {
		return domain.ErrForbidden
	}
	if !domorder.IsMutable(o.Status) {
		return domain.NewConflictError(o.Status, "une commande validée ne peut plus être supprimée")
	}
	return uc.orders.Delete(o.ID)
}

// panierKey dérive la clé d'unicité du panier depuis l'identité. Un compte
// prime sur le numéro ; un anonyme doit fournir un numéro.
func (uc *CartUseCase) panierKey(actor identity.Identity, rawPhone, restaurantID string) (repository.PanierKey, error) {
	if restaurantID == "" {
		return repository.PanierKey{}, domain.NewValidationError("restaurant", "restaurant requis")
	}
	if actor.IsAuthenticated() {
		return repository.PanierKey{UserID: actor.UserID, RestaurantID: restaurantID}, nil
	}
	if actor.Kind == identity.PhoneOnly && rawPhone == "" {
		rawPhone = actor.Phone
	}
	normalized := phone.Normalize(rawPhone, uc.countryCode)
	if normalized == "" {
		return repository.PanierKey{}, domain.NewValidationError("phone", "numéro de téléphone requis pour une commande anonyme")
	}
	return repository.PanierKey{Phone: normalized, RestaurantID: restaurantID}, nil
}

// validateLines vérifie les lignes soumises et résout les plats référencés.
func (uc *CartUseCase) validateLines(reqLines []dto.CartLineRequest) ([]entity.OrderLine, error) {
	if len(reqLines) == 0 {
		return nil, domain.NewValidationError("lines", "au moins une ligne est requise")
	}
	ids := make([]string, 0, len(reqLines))
	for _, l := range reqLines {
		if l.DishID == "" {
			return nil, domain.NewValidationError("lines", "dish_id requis sur chaque ligne")
		}
		if l.Quantity < 1 {
			return nil, domain.NewValidationError("lines", "quantité minimale 1")
		}
		ids = append(ids, l.DishID)
	}
	dishes, err := uc.dishes.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(dishes))
	for _, d := range dishes {
		known[d.ID] = struct{}{}
	}
	lines := make([]entity.OrderLine, 0, len(reqLines))
	for _, l := range reqLines {
		if _, ok := known[l.DishID]; !ok {
			return nil, domain.NewValidationError("lines", "plat composé inconnu: "+l.DishID)
		}
		lines = append(lines, entity.OrderLine{
			ID:       uuid.NewString(),
			DishID:   l.DishID,
			Quantity: l.Quantity,
		})
	}
	return lines, nil
}
