package dish

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
)

type memBases struct{ items map[string]*entity.Base }

func (r *memBases) GetByID(id string) (*entity.Base, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
func (r *memBases) ListByRestaurant(string) ([]*entity.Base, error) { return nil, nil }
func (r *memBases) ListGlobal() ([]*entity.Base, error)             { return nil, nil }
func (r *memBases) ListAll() ([]*entity.Base, error)                { return nil, nil }

type memIngredients struct{ items map[string]*entity.Ingredient }

func (r *memIngredients) GetByID(id string) (*entity.Ingredient, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return i, nil
}
func (r *memIngredients) GetByIDs(ids []string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, id := range ids {
		if i, ok := r.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *memIngredients) ListByRestaurant(string) ([]*entity.Ingredient, error) { return nil, nil }
func (r *memIngredients) ListGlobal() ([]*entity.Ingredient, error)             { return nil, nil }
func (r *memIngredients) ListAll() ([]*entity.Ingredient, error)                { return nil, nil }
func (r *memIngredients) UpdateStock(string, int) error                         { return nil }

type memMenus struct{ items map[string]*entity.MenuItem }

func (r *memMenus) GetByID(id string) (*entity.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}
func (r *memMenus) ListByRestaurant(string) ([]*entity.MenuItem, error) { return nil, nil }
func (r *memMenus) ListGlobal() ([]*entity.MenuItem, error)             { return nil, nil }
func (r *memMenus) ListAll() ([]*entity.MenuItem, error)                { return nil, nil }
func (r *memMenus) SetDisponible(string, bool) error                    { return nil }
func (r *memMenus) GetPlatDuJour(string) (*entity.MenuItem, error)      { return nil, domain.ErrNotFound }

type memDishes struct{ items map[string]*entity.ComposedDish }

func (r *memDishes) Create(d *entity.ComposedDish) error {
	r.items[d.ID] = d
	return nil
}
func (r *memDishes) GetByID(id string) (*entity.ComposedDish, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}
func (r *memDishes) GetByIDs(ids []string) ([]*entity.ComposedDish, error) {
	var out []*entity.ComposedDish
	for _, id := range ids {
		if d, ok := r.items[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func prix(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture() (*UseCase, *memDishes) {
	bases := &memBases{items: map[string]*entity.Base{
		"b1": {ID: "b1", Nom: "Riz blanc", Prix: prix("1000"), Disponible: true},
	}}
	ingredients := &memIngredients{items: map[string]*entity.Ingredient{
		"i1": {ID: "i1", Nom: "Poulet", Prix: prix("800"), Type: entity.IngredientViande},
		"i2": {ID: "i2", Nom: "Oignon", Prix: prix("200"), Type: entity.IngredientLegume},
	}}
	menus := &memMenus{items: map[string]*entity.MenuItem{
		"m1": {ID: "m1", Nom: "Thiéboudienne", Prix: prix("2500"), Type: entity.MenuDej, Disponible: true},
	}}
	dishes := &memDishes{items: map[string]*entity.ComposedDish{}}
	return NewUseCase(bases, ingredients, menus, dishes), dishes
}

var client = identity.NewAccount("u1", entity.RoleClient, "")

func TestCompose_PrixBasePlusIngredients(t *testing.T) {
	uc, _ := newFixture()

	out, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{
		BaseID:        "b1",
		IngredientIDs: []string{"i1", "i2"},
	})
	require.NoError(t, err)

	// 1000 + 800 + 200
	assert.True(t, prix("2000").Equal(out.Prix))
	assert.Equal(t, "Riz blanc", out.Base)
	assert.Equal(t, "u1", out.User)
}

func TestCompose_RaccourciPlatDuMenu(t *testing.T) {
	uc, _ := newFixture()

	out, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{MenuItemID: "m1"})
	require.NoError(t, err)

	assert.True(t, prix("2500").Equal(out.Prix))
	assert.Equal(t, "Thiéboudienne", out.Base)
	assert.Empty(t, out.Ingredients)
}

func TestCompose_PrixFigeApresChangementDeCatalogue(t *testing.T) {
	uc, dishes := newFixture()

	out, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{BaseID: "b1"})
	require.NoError(t, err)

	// Le prix du catalogue change : l'instantané ne bouge pas.
	uc.bases.(*memBases).items["b1"].Prix = prix("9999")
	assert.True(t, prix("1000").Equal(dishes.items[out.ID].Prix))
}

func TestCompose_PasDeDeduplication(t *testing.T) {
	uc, dishes := newFixture()

	a, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{BaseID: "b1", IngredientIDs: []string{"i1"}})
	require.NoError(t, err)
	b, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{BaseID: "b1", IngredientIDs: []string{"i1"}})
	require.NoError(t, err)

	// Deux compositions identiques = deux enregistrements distincts.
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, dishes.items, 2)
}

func TestCompose_Validation(t *testing.T) {
	uc, _ := newFixture()

	// Ni base ni plat du menu.
	_, err := uc.Compose(context.Background(), client, dto.ComposeDishRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ingrédient inconnu.
	_, err = uc.Compose(context.Background(), client, dto.ComposeDishRequest{BaseID: "b1", IngredientIDs: []string{"absent"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Base inconnue.
	_, err = uc.Compose(context.Background(), client, dto.ComposeDishRequest{BaseID: "absente"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompose_AnonymeSansProprietaire(t *testing.T) {
	uc, _ := newFixture()

	out, err := uc.Compose(context.Background(), identity.NewAnonymous(), dto.ComposeDishRequest{BaseID: "b1"})
	require.NoError(t, err)
	assert.Empty(t, out.User)
}
