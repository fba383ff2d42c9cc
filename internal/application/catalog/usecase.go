package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

// Préfixes des clés de cache, par type d'entrée.
const (
	cacheKeyMenu        = "catalog:menu:"
	cacheKeyBases       = "catalog:bases:"
	cacheKeyIngredients = "catalog:ingredients:"
)

// UseCase résolution du catalogue (périmètre restaurant + chaînes de repli) et
// registre de stock des ingrédients.
//
// Règles de résolution, dans l'ordre :
//  1. restaurant demandé -> ses entrées ; si vide, repli sur le catalogue
//     global (entrées sans restaurant) ; si toujours vide, catalogue complet ;
//  2. personnel sans filtre restaurant -> catalogue complet non filtré ;
//  3. public -> entrées disponibles seulement, avec repli sur l'ensemble
//     pré-filtrage si des drapeaux périmés masqueraient tout.
//
// L'absence d'un restaurant ne produit jamais d'erreur : elle dégrade vers le
// catalogue global.
type UseCase struct {
	bases       repository.BaseRepository
	ingredients repository.IngredientRepository
	menus       repository.MenuItemRepository
	cache       Cache // nil = pas de cache
	log         *logger.Logger
}

// NewUseCase construit le cas d'usage. cache peut être nil.
func NewUseCase(
	bases repository.BaseRepository,
	ingredients repository.IngredientRepository,
	menus repository.MenuItemRepository,
	cache Cache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{bases: bases, ingredients: ingredients, menus: menus, cache: cache, log: log}
}

// ──────────────────────────────────────────────────────────────────────────────
// Résolution
// ──────────────────────────────────────────────────────────────────────────────

// ResolveMenu résout les plats du menu commandables pour l'appelant.
func (uc *UseCase) ResolveMenu(ctx context.Context, restaurantID string, actor identity.Identity) ([]dto.MenuItemResponse, error) {
	adminView := actor.IsStaff() && restaurantID == ""

	cacheKey := cacheKeyMenu + cacheScope(restaurantID)
	if !adminView {
		var cached []dto.MenuItemResponse
		if uc.cacheGet(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := uc.scopedMenu(restaurantID)
	if err != nil {
		return nil, err
	}
	if !adminView {
		disponibles := items[:0:0]
		for _, m := range items {
			if m.Disponible {
				disponibles = append(disponibles, m)
			}
		}
		// Des drapeaux périmés ne doivent jamais vider entièrement le menu.
		if len(disponibles) > 0 {
			items = disponibles
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		return items[i].Nom < items[j].Nom
	})

	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, dto.ToMenuItemResponse(m))
	}
	if !adminView {
		uc.cacheSet(ctx, cacheKey, out)
	}
	return out, nil
}

// ResolveBases résout les bases commandables pour l'appelant.
func (uc *UseCase) ResolveBases(ctx context.Context, restaurantID string, actor identity.Identity) ([]dto.BaseResponse, error) {
	adminView := actor.IsStaff() && restaurantID == ""

	cacheKey := cacheKeyBases + cacheScope(restaurantID)
	if !adminView {
		var cached []dto.BaseResponse
		if uc.cacheGet(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := uc.scopedBases(restaurantID)
	if err != nil {
		return nil, err
	}
	if !adminView {
		disponibles := items[:0:0]
		for _, b := range items {
			if b.Disponible {
				disponibles = append(disponibles, b)
			}
		}
		if len(disponibles) > 0 {
			items = disponibles
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Nom < items[j].Nom })

	out := make([]dto.BaseResponse, 0, len(items))
	for _, b := range items {
		out = append(out, dto.ToBaseResponse(b))
	}
	if !adminView {
		uc.cacheSet(ctx, cacheKey, out)
	}
	return out, nil
}

// ResolveIngredients résout les ingrédients commandables pour l'appelant.
func (uc *UseCase) ResolveIngredients(ctx context.Context, restaurantID string, actor identity.Identity) ([]dto.IngredientResponse, error) {
	adminView := actor.IsStaff() && restaurantID == ""

	cacheKey := cacheKeyIngredients + cacheScope(restaurantID)
	if !adminView {
		var cached []dto.IngredientResponse
		if uc.cacheGet(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	items, err := uc.scopedIngredients(restaurantID)
	if err != nil {
		return nil, err
	}
	if !adminView {
		disponibles := items[:0:0]
		for _, i := range items {
			if i.Disponible {
				disponibles = append(disponibles, i)
			}
		}
		if len(disponibles) > 0 {
			items = disponibles
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		return items[i].Nom < items[j].Nom
	})

	out := make([]dto.IngredientResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ToIngredientResponse(i))
	}
	if !adminView {
		uc.cacheSet(ctx, cacheKey, out)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Registre de stock
// ──────────────────────────────────────────────────────────────────────────────

// AdjustStock fixe le stock d'un ingrédient (action explicite du personnel :
// aucune décrémentation automatique n'est faite à la commande). La quantité
// doit être un entier non négatif.
func (uc *UseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.IngredientResponse, error) {
	if in.Stock == nil {
		return nil, domain.NewValidationError("stock", "quantité requise")
	}
	if *in.Stock < 0 {
		return nil, domain.NewValidationError("stock", "la quantité doit être un entier non négatif")
	}
	ing, err := uc.ingredients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.ingredients.UpdateStock(id, *in.Stock); err != nil {
		return nil, err
	}
	ing.StockActuel = *in.Stock
	ing.UpdatedAt = time.Now()
	uc.cacheInvalidate(ctx, cacheKeyIngredients)
	out := dto.ToIngredientResponse(ing)
	return &out, nil
}

// LowStockAlert liste les ingrédients dont le stock est au niveau ou sous le
// minimum configuré.
func (uc *UseCase) LowStockAlert(ctx context.Context) (*dto.LowStockAlertResponse, error) {
	all, err := uc.ingredients.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0)
	for _, ing := range all {
		if ing.IsLowStock() {
			items = append(items, dto.ToIngredientResponse(ing))
		}
	}
	return &dto.LowStockAlertResponse{Count: len(items), Items: items}, nil
}

// ToggleDisponible bascule la disponibilité d'un plat du menu.
func (uc *UseCase) ToggleDisponible(ctx context.Context, menuItemID string) (*dto.MenuItemResponse, error) {
	item, err := uc.menus.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Disponible = !item.Disponible
	if err := uc.menus.SetDisponible(menuItemID, item.Disponible); err != nil {
		return nil, err
	}
	uc.cacheInvalidate(ctx, cacheKeyMenu)
	out := dto.ToMenuItemResponse(item)
	return &out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repli de périmètre et cache
// ──────────────────────────────────────────────────────────────────────────────

func cacheScope(restaurantID string) string {
	if restaurantID == "" {
		return "all"
	}
	return restaurantID
}

func (uc *UseCase) cacheGet(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}
	ok, err := uc.cache.GetJSON(ctx, key, dest)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("lecture cache catalogue")
		return false
	}
	return ok
}

func (uc *UseCase) cacheSet(ctx context.Context, key string, val any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetJSON(ctx, key, val); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("écriture cache catalogue")
	}
}

func (uc *UseCase) cacheInvalidate(ctx context.Context, prefix string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPrefix(ctx, prefix); err != nil {
		uc.log.Warn().Err(err).Str("prefix", prefix).Msg("invalidation cache catalogue")
	}
}
