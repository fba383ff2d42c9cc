package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/application/notify"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
	"github.com/famadiop1025/Bokkdej/pkg/phone"
)

// StatusUseCase moteur de transition des statuts. Chaque transition appliquée
// écrit son événement de journal dans la même transaction, puis déclenche la
// diffusion best-effort (push, SMS, journal Kafka) une fois commise.
//
// Concurrence : dernier écrivain gagnant entre deux membres du personnel ;
// aucune transition ne peut toutefois violer la machine à états.
type StatusUseCase struct {
	tx          TxRunner
	orders      repository.OrderRepository
	users       repository.UserRepository
	notifier    Notifier // nil = notifications désactivées
	countryCode string
	log         *logger.Logger
}

// NewStatusUseCase construit le moteur de transition. notifier peut être nil.
func NewStatusUseCase(
	tx TxRunner,
	orders repository.OrderRepository,
	users repository.UserRepository,
	notifier Notifier,
	countryCode string,
	log *logger.Logger,
) *StatusUseCase {
	return &StatusUseCase{tx: tx, orders: orders, users: users, notifier: notifier, countryCode: countryCode, log: log}
}

// ValidateCart fait passer un panier en attente de préparation. Seule
// transition accessible sans rôle du personnel : le propriétaire (compte ou
// numéro) valide son propre panier. Notifie le propriétaire et le personnel
// du restaurant.
func (uc *StatusUseCase) ValidateCart(ctx context.Context, actor identity.Identity, orderID string) (*dto.OrderResponse, error) {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.Can(actor, o, domorder.ActionModify) {
		return nil, domain.ErrForbidden
	}
	if o.Status != domorder.StatusPanier {
		return nil, domain.NewConflictError(o.Status, "la commande a déjà été validée")
	}

	if err := uc.applyTransition(ctx, o, domorder.StatusEnAttente, actor.UserID); err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", o.ID).Str("restaurant_id", o.RestaurantID).Msg("panier validé")
	uc.notifyValidated(o)

	resp := dto.ToOrderResponse(o)
	return &resp, nil
}

// SetStatus applique une transition pilotée par le personnel. Statut hors
// énumération -> erreur de validation ; transition illégale -> conflit portant
// le statut courant.
func (uc *StatusUseCase) SetStatus(ctx context.Context, actor identity.Identity, orderID string, req dto.UpdateStatusRequest) (*dto.OrderResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !domorder.IsValidStatus(req.Status) {
		return nil, domain.NewValidationError("status", "statut inconnu: "+req.Status)
	}
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.CanTransition(o.Status, req.Status) {
		return nil, domain.NewConflictError(o.Status, "transition interdite vers "+req.Status)
	}

	from := o.Status
	if err := uc.applyTransition(ctx, o, req.Status, actor.UserID); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", o.ID).
		Str("status", o.Status).
		Str("actor_id", actor.UserID).
		Msg("statut de commande mis à jour")
	uc.notifyStatusChanged(o, from)

	resp := dto.ToOrderResponse(o)
	return &resp, nil
}

// applyTransition écrit le nouveau statut et son événement de journal dans la
// même transaction, puis reflète le changement sur l'entité en mémoire.
func (uc *StatusUseCase) applyTransition(ctx context.Context, o *entity.Order, to, actorID string) error {
	from := o.Status
	err := uc.tx.WithinTx(ctx, func(r TxRepos) error {
		if err := r.Orders.UpdateStatus(o.ID, from, to); err != nil {
			return err
		}
		return r.Events.Create(&entity.OrderEvent{
			ID:           uuid.NewString(),
			OrderID:      o.ID,
			RestaurantID: o.RestaurantID,
			FromStatus:   from,
			ToStatus:     to,
			ActorID:      actorID,
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

// notifyValidated propriétaire + personnel du restaurant à la validation.
func (uc *StatusUseCase) notifyValidated(o *entity.Order) {
	if uc.notifier == nil {
		return
	}
	tokens := uc.ownerTokens(o)
	staff, err := uc.users.ListStaff(o.RestaurantID)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("chargement du personnel à notifier")
	}
	for _, s := range staff {
		tokens = append(tokens, s.FCMToken)
	}
	uc.notifier.Dispatch(notify.StatusChangedEvent{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		FromStatus:   domorder.StatusPanier,
		ToStatus:     o.Status,
		OccurredAt:   time.Now(),
	}, notify.Delivery{
		PushTokens: tokens,
		PushTitle:  "Commande validée",
		PushBody:   domorder.StatusMessage(o.Status),
	})
}

// notifyStatusChanged propriétaire à chaque transition du personnel ; SMS de
// clôture quand la commande atteint termine.
func (uc *StatusUseCase) notifyStatusChanged(o *entity.Order, from string) {
	if uc.notifier == nil {
		return
	}
	delivery := notify.Delivery{
		PushTokens: uc.ownerTokens(o),
		PushTitle:  "Votre commande",
		PushBody:   domorder.StatusMessage(o.Status),
	}
	if o.Status == domorder.StatusTermine {
		if p := uc.smsPhone(o); p != "" {
			delivery.SMSPhone = p
			delivery.SMSBody = domorder.StatusMessage(o.Status)
		}
	}
	uc.notifier.Dispatch(notify.StatusChangedEvent{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		FromStatus:   from,
		ToStatus:     o.Status,
		OccurredAt:   time.Now(),
	}, delivery)
}

// ownerTokens jeton push du compte propriétaire, s'il en a un.
func (uc *StatusUseCase) ownerTokens(o *entity.Order) []string {
	if o.UserID == "" {
		return nil
	}
	u, err := uc.users.GetByID(o.UserID)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("chargement du propriétaire à notifier")
		return nil
	}
	if u.FCMToken == "" {
		return nil
	}
	return []string{u.FCMToken}
}

// smsPhone numéro SMS normalisé : celui de la commande, sinon celui du profil
// du propriétaire.
func (uc *StatusUseCase) smsPhone(o *entity.Order) string {
	raw := o.Phone
	if raw == "" && o.UserID != "" {
		if u, err := uc.users.GetByID(o.UserID); err == nil {
			raw = u.Phone
		}
	}
	return phone.Normalize(raw, uc.countryCode)
}
