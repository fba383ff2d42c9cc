package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

// ─────────────────────────────────────────────
// Doubles
// ─────────────────────────────────────────────

type memBases struct{ items []*entity.Base }

func (r *memBases) GetByID(id string) (*entity.Base, error) {
	for _, b := range r.items {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *memBases) ListByRestaurant(rid string) ([]*entity.Base, error) {
	var out []*entity.Base
	for _, b := range r.items {
		if b.RestaurantID == rid {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBases) ListGlobal() ([]*entity.Base, error) {
	var out []*entity.Base
	for _, b := range r.items {
		if b.RestaurantID == "" {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBases) ListAll() ([]*entity.Base, error) { return r.items, nil }

type memIngredients struct{ items []*entity.Ingredient }

func (r *memIngredients) GetByID(id string) (*entity.Ingredient, error) {
	for _, i := range r.items {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *memIngredients) GetByIDs(ids []string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, id := range ids {
		for _, i := range r.items {
			if i.ID == id {
				out = append(out, i)
			}
		}
	}
	return out, nil
}
func (r *memIngredients) ListByRestaurant(rid string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range r.items {
		if i.RestaurantID == rid {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *memIngredients) ListGlobal() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, i := range r.items {
		if i.RestaurantID == "" {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *memIngredients) ListAll() ([]*entity.Ingredient, error) { return r.items, nil }
func (r *memIngredients) UpdateStock(id string, quantity int) error {
	for _, i := range r.items {
		if i.ID == id {
			i.StockActuel = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

type memMenus struct{ items []*entity.MenuItem }

func (r *memMenus) GetByID(id string) (*entity.MenuItem, error) {
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *memMenus) ListByRestaurant(rid string) ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	for _, m := range r.items {
		if m.RestaurantID == rid {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMenus) ListGlobal() ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	for _, m := range r.items {
		if m.RestaurantID == "" {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMenus) ListAll() ([]*entity.MenuItem, error) { return r.items, nil }
func (r *memMenus) SetDisponible(id string, disponible bool) error {
	for _, m := range r.items {
		if m.ID == id {
			m.Disponible = disponible
			return nil
		}
	}
	return domain.ErrNotFound
}
func (r *memMenus) GetPlatDuJour(rid string) (*entity.MenuItem, error) {
	for _, m := range r.items {
		if m.RestaurantID == rid && m.PlatDuJour {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

// memCache cache en mémoire, sérialisation JSON comme le vrai.
type memCache struct {
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) DeleteByPrefix(_ context.Context, prefix string) error {
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
	return nil
}

func menuItem(id, nom, typ, rid string, disponible bool) *entity.MenuItem {
	return &entity.MenuItem{ID: id, Nom: nom, Type: typ, RestaurantID: rid, Disponible: disponible}
}

func newFixture(menus *memMenus, ingredients *memIngredients) (*UseCase, *memCache) {
	cache := newMemCache()
	if ingredients == nil {
		ingredients = &memIngredients{}
	}
	uc := NewUseCase(&memBases{}, ingredients, menus, cache,
		logger.New(logger.Config{Env: "production", Level: "error"}))
	return uc, cache
}

var (
	public = identity.NewAnonymous()
	admin  = identity.NewAccount("adm", entity.RoleAdmin, "")
)

// ─────────────────────────────────────────────
// Chaîne de repli (scénario E)
// ─────────────────────────────────────────────

func TestResolveMenu_RestaurantSansEntreesRepliSurGlobal(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Omelette", entity.MenuPetitDej, "", true),
		menuItem("m2", "Thiof", entity.MenuDej, "autre-resto", true),
	}}
	uc, _ := newFixture(menus, nil)

	out, err := uc.ResolveMenu(context.Background(), "resto-vide", public)
	require.NoError(t, err)
	// Aucune entrée propre au restaurant : le catalogue global répond.
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].ID)
}

func TestResolveMenu_DrapeauxPerimesNeVidentPasLeMenu(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Mafé", entity.MenuDej, "r1", false),
		menuItem("m2", "Yassa", entity.MenuDej, "r1", false),
	}}
	uc, _ := newFixture(menus, nil)

	out, err := uc.ResolveMenu(context.Background(), "r1", public)
	require.NoError(t, err)
	// Tout est indisponible : on répond l'ensemble pré-filtrage plutôt que rien.
	assert.Len(t, out, 2)
}

func TestResolveMenu_FiltreDisponibilitePublic(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Mafé", entity.MenuDej, "r1", true),
		menuItem("m2", "Yassa", entity.MenuDej, "r1", false),
	}}
	uc, _ := newFixture(menus, nil)

	out, err := uc.ResolveMenu(context.Background(), "r1", public)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].ID)
}

func TestResolveMenu_PersonnelSansFiltreVoitTout(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Mafé", entity.MenuDej, "r1", true),
		menuItem("m2", "Yassa", entity.MenuDej, "r2", false),
	}}
	uc, _ := newFixture(menus, nil)

	out, err := uc.ResolveMenu(context.Background(), "", admin)
	require.NoError(t, err)
	// Vue d'administration : catalogue complet, indisponibles compris.
	assert.Len(t, out, 2)
}

func TestResolveMenu_TriParTypePuisNom(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Zébu grillé", entity.MenuDej, "r1", true),
		menuItem("m2", "Café touba", entity.MenuPetitDej, "r1", true),
		menuItem("m3", "Accara", entity.MenuDej, "r1", true),
	}}
	uc, _ := newFixture(menus, nil)

	out, err := uc.ResolveMenu(context.Background(), "r1", public)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"m3", "m2", "m1"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestResolveMenu_CachePublicSeulement(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Mafé", entity.MenuDej, "r1", true),
	}}
	uc, cache := newFixture(menus, nil)

	_, err := uc.ResolveMenu(context.Background(), "r1", public)
	require.NoError(t, err)
	_, err = uc.ResolveMenu(context.Background(), "r1", public)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	// La vue d'administration ne passe jamais par le cache.
	before := cache.hits
	_, err = uc.ResolveMenu(context.Background(), "", admin)
	require.NoError(t, err)
	assert.Equal(t, before, cache.hits)
}

// ─────────────────────────────────────────────
// Registre de stock
// ─────────────────────────────────────────────

func TestAdjustStock(t *testing.T) {
	ingredients := &memIngredients{items: []*entity.Ingredient{
		{ID: "i1", Nom: "Oignon", StockActuel: 10, StockMin: 3, Disponible: true},
	}}
	uc, cache := newFixture(&memMenus{}, ingredients)
	cache.data[cacheKeyIngredients+"all"] = []byte("[]")

	stock := 7
	out, err := uc.AdjustStock(context.Background(), "i1", dto.AdjustStockRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 7, out.StockActuel)

	// L'ajustement invalide le cache des ingrédients.
	_, ok := cache.data[cacheKeyIngredients+"all"]
	assert.False(t, ok)
}

func TestAdjustStock_Validation(t *testing.T) {
	ingredients := &memIngredients{items: []*entity.Ingredient{{ID: "i1", Nom: "Oignon"}}}
	uc, _ := newFixture(&memMenus{}, ingredients)

	_, err := uc.AdjustStock(context.Background(), "i1", dto.AdjustStockRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "stock", verr.Field)

	negative := -1
	_, err = uc.AdjustStock(context.Background(), "i1", dto.AdjustStockRequest{Stock: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStockAlert(t *testing.T) {
	ingredients := &memIngredients{items: []*entity.Ingredient{
		{ID: "i1", Nom: "Oignon", StockActuel: 2, StockMin: 3},
		{ID: "i2", Nom: "Poulet", StockActuel: 5, StockMin: 5}, // au seuil : inclus
		{ID: "i3", Nom: "Riz", StockActuel: 50, StockMin: 10},
	}}
	uc, _ := newFixture(&memMenus{}, ingredients)

	out, err := uc.LowStockAlert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
}

func TestToggleDisponible(t *testing.T) {
	menus := &memMenus{items: []*entity.MenuItem{
		menuItem("m1", "Mafé", entity.MenuDej, "r1", true),
	}}
	uc, cache := newFixture(menus, nil)
	cache.data[cacheKeyMenu+"r1"] = []byte("[]")

	out, err := uc.ToggleDisponible(context.Background(), "m1")
	require.NoError(t, err)
	assert.False(t, out.Disponible)

	_, ok := cache.data[cacheKeyMenu+"r1"]
	assert.False(t, ok)

	out, err = uc.ToggleDisponible(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, out.Disponible)
}
