package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	domorder "github.com/famadiop1025/Bokkdej/internal/domain/order"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

type stubOrders struct{ o *entity.Order }

func (s *stubOrders) GetByID(id string) (*entity.Order, error) {
	if s.o == nil || s.o.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.o, nil
}
func (s *stubOrders) FindPanier(repository.PanierKey) (*entity.Order, error)       { return nil, nil }
func (s *stubOrders) UpsertPanier(*entity.Order) (bool, error)                     { return false, nil }
func (s *stubOrders) ReplaceLines(string, []entity.OrderLine) error                { return nil }
func (s *stubOrders) UpdateStatus(string, string, string) error                    { return nil }
func (s *stubOrders) Update(*entity.Order) error                                   { return nil }
func (s *stubOrders) Delete(string) error                                          { return nil }
func (s *stubOrders) ListHistory(repository.PanierKey) ([]*entity.Order, error)    { return nil, nil }
func (s *stubOrders) ListByRestaurant(string, int) ([]*entity.Order, error)        { return nil, nil }

type stubDishes struct{ dishes map[string]*entity.ComposedDish }

func (s *stubDishes) Create(*entity.ComposedDish) error { return nil }
func (s *stubDishes) GetByID(id string) (*entity.ComposedDish, error) {
	d, ok := s.dishes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}
func (s *stubDishes) GetByIDs(ids []string) ([]*entity.ComposedDish, error) {
	var out []*entity.ComposedDish
	for _, id := range ids {
		if d, ok := s.dishes[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubRestaurants struct{ r *entity.Restaurant }

func (s *stubRestaurants) GetByID(id string) (*entity.Restaurant, error) {
	if s.r == nil || s.r.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.r, nil
}
func (s *stubRestaurants) ListVisible() ([]*entity.Restaurant, error) { return nil, nil }

type generatorSpy struct{ data ReceiptData }

func (g *generatorSpy) Generate(data ReceiptData) ([]byte, error) {
	g.data = data
	return []byte("%PDF-"), nil
}

func TestReceipt_AssembleLesDonnees(t *testing.T) {
	orders := &stubOrders{o: &entity.Order{
		ID:           "o1",
		UserID:       "u1",
		RestaurantID: "r1",
		Status:       domorder.StatusTermine,
		PrixTotal:    decimal.RequireFromString("4500"),
		Lines:        []entity.OrderLine{{DishID: "d1", Quantity: 2}},
	}}
	dishes := &stubDishes{dishes: map[string]*entity.ComposedDish{
		"d1": {ID: "d1", BaseNom: "Yassa poulet", Prix: decimal.RequireFromString("2250")},
	}}
	restaurants := &stubRestaurants{r: &entity.Restaurant{ID: "r1", Nom: "Chez Fatou", WavePaymentLink: "https://pay.wave.com/m/abc"}}
	spy := &generatorSpy{}
	uc := NewUseCase(orders, dishes, restaurants, spy, "221")

	pdf, err := uc.Receipt(context.Background(), identity.NewAccount("u1", entity.RoleClient, ""), "o1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	assert.Equal(t, "Chez Fatou", spy.data.RestaurantNom)
	assert.Equal(t, "https://pay.wave.com/m/abc", spy.data.WaveLink)
	require.Len(t, spy.data.Lines, 1)
	assert.Equal(t, "Yassa poulet", spy.data.Lines[0].Libelle)
	assert.Equal(t, 2, spy.data.Lines[0].Quantity)
}

func TestReceipt_PanierSansRecu(t *testing.T) {
	orders := &stubOrders{o: &entity.Order{ID: "o1", UserID: "u1", Status: domorder.StatusPanier}}
	uc := NewUseCase(orders, &stubDishes{}, &stubRestaurants{}, &generatorSpy{}, "221")

	_, err := uc.Receipt(context.Background(), identity.NewAccount("u1", entity.RoleClient, ""), "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceipt_RefuseUnAutreClient(t *testing.T) {
	orders := &stubOrders{o: &entity.Order{ID: "o1", UserID: "u1", Status: domorder.StatusTermine}}
	uc := NewUseCase(orders, &stubDishes{}, &stubRestaurants{}, &generatorSpy{}, "221")

	_, err := uc.Receipt(context.Background(), identity.NewAccount("u2", entity.RoleClient, ""), "o1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
