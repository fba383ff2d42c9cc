// Package billing génération du reçu PDF d'une commande, avec le lien de
// paiement Wave du restaurant en QR code.
package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

// ReceiptLine ligne du reçu.
type ReceiptLine struct {
	Libelle  string
	Quantity int
	Prix     decimal.Decimal
}

// ReceiptData contenu du reçu à rendre.
type ReceiptData struct {
	OrderID       string
	RestaurantNom string
	Lines         []ReceiptLine
	PrixTotal     decimal.Decimal
	WaveLink      string // vide = pas de QR
	CreatedAt     time.Time
}

// ReceiptGenerator rendu PDF du reçu.
type ReceiptGenerator interface {
	Generate(data ReceiptData) ([]byte, error)
}

// UseCase assemble les données du reçu et délègue le rendu.
type UseCase struct {
	orders      repository.OrderRepository
	dishes      repository.ComposedDishRepository
	restaurants repository.RestaurantRepository
	generator   ReceiptGenerator
	countryCode string
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	orders repository.OrderRepository,
	dishes repository.ComposedDishRepository,
	restaurants repository.RestaurantRepository,
	generator ReceiptGenerator,
	countryCode string,
) *UseCase {
	return &UseCase{orders: orders, dishes: dishes, restaurants: restaurants, generator: generator, countryCode: countryCode}
}

// Receipt produit le reçu PDF d'une commande visible par l'appelant. Un panier
// non validé n'a pas de reçu.
func (uc *UseCase) Receipt(ctx context.Context, actor identity.Identity, orderID string) ([]byte, error) {
	actor = actor.NormalizePhone(uc.countryCode)
	o, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !domorder.Can(actor, o, domorder.ActionView) {
		return nil, domain.ErrForbidden
	}
	if o.Status == domorder.StatusPanier {
		return nil, domain.NewConflictError(o.Status, "un panier non validé n'a pas de reçu")
	}

	data := ReceiptData{
		OrderID:   o.ID,
		PrixTotal: o.PrixTotal,
		CreatedAt: o.CreatedAt,
	}
	if o.RestaurantID != "" {
		if r, err := uc.restaurants.GetByID(o.RestaurantID); err == nil {
			data.RestaurantNom = r.Nom
			data.WaveLink = r.WavePaymentLink
		}
	}

	ids := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		ids = append(ids, l.DishID)
	}
	dishes, err := uc.dishes.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	libelles := make(map[string]string, len(dishes))
	prix := make(map[string]decimal.Decimal, len(dishes))
	for _, d := range dishes {
		libelles[d.ID] = d.BaseNom
		prix[d.ID] = d.Prix
	}
	for _, l := range o.Lines {
		libelle := libelles[l.DishID]
		if libelle == "" {
			libelle = "Plat composé"
		}
		data.Lines = append(data.Lines, ReceiptLine{Libelle: libelle, Quantity: l.Quantity, Prix: prix[l.DishID]})
	}

	return uc.generator.Generate(data)
}
