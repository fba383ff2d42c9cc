package dish

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

// UseCase composition de plats. Un plat composé est un instantané immuable :
// le prix est figé à la création et ne suit jamais les prix du catalogue.
// Recomposer "le même" plat crée un nouvel enregistrement, sans déduplication —
// la répétition dans un panier s'exprime par la quantité de la ligne.
type UseCase struct {
	bases       repository.BaseRepository
	ingredients repository.IngredientRepository
	menus       repository.MenuItemRepository
	dishes      repository.ComposedDishRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	bases repository.BaseRepository,
	ingredients repository.IngredientRepository,
	menus repository.MenuItemRepository,
	dishes repository.ComposedDishRepository,
) *UseCase {
	return &UseCase{bases: bases, ingredients: ingredients, menus: menus, dishes: dishes}
}

// Compose crée un plat composé. Composition explicite (base + ingrédients) ou
// raccourci plat du menu (menu_item_id seul, ingrédients vides).
func (uc *UseCase) Compose(ctx context.Context, actor identity.Identity, in dto.ComposeDishRequest) (*dto.ComposedDishResponse, error) {
	if in.MenuItemID != "" {
		return uc.composeFromMenuItem(actor, in.MenuItemID)
	}
	if in.BaseID == "" {
		return nil, domain.NewValidationError("base_id", "base ou plat du menu requis")
	}

	base, err := uc.bases.GetByID(in.BaseID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, domain.ErrNotFound
	}

	prix := base.Prix
	ingredientIDs := make([]string, 0, len(in.IngredientIDs))
	if len(in.IngredientIDs) > 0 {
		ings, err := uc.ingredients.GetByIDs(in.IngredientIDs)
		if err != nil {
			return nil, err
		}
		if len(ings) != len(in.IngredientIDs) {
			return nil, domain.ErrNotFound
		}
		for _, ing := range ings {
			prix = prix.Add(ing.Prix)
			ingredientIDs = append(ingredientIDs, ing.ID)
		}
	}

	d := &entity.ComposedDish{
		ID:            uuid.New().String(),
		BaseNom:       base.Nom,
		IngredientIDs: ingredientIDs,
		UserID:        actor.UserID,
		Prix:          prix,
		CreatedAt:     time.Now(),
	}
	if err := uc.dishes.Create(d); err != nil {
		return nil, err
	}
	out := dto.ToComposedDishResponse(d)
	return &out, nil
}

// composeFromMenuItem raccourci : le prix est celui du plat du menu, la liste
// d'ingrédients reste vide.
func (uc *UseCase) composeFromMenuItem(actor identity.Identity, menuItemID string) (*dto.ComposedDishResponse, error) {
	item, err := uc.menus.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	d := &entity.ComposedDish{
		ID:            uuid.New().String(),
		BaseNom:       item.Nom,
		IngredientIDs: []string{},
		UserID:        actor.UserID,
		Prix:          item.Prix,
		CreatedAt:     time.Now(),
	}
	if err := uc.dishes.Create(d); err != nil {
		return nil, err
	}
	out := dto.ToComposedDishResponse(d)
	return &out, nil
}

// GetByID lit un plat composé.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ComposedDishResponse, error) {
	d, err := uc.dishes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	out := dto.ToComposedDishResponse(d)
	return &out, nil
}
