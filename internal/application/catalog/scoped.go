package catalog

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// Chaîne de repli commune aux trois types d'entrées : restaurant demandé ->
// entrées du restaurant, sinon catalogue global (sans restaurant), sinon
// catalogue complet. Sans filtre restaurant, catalogue complet directement.

func (uc *UseCase) scopedMenu(restaurantID string) ([]*entity.MenuItem, error) {
	if restaurantID == "" {
		return uc.menus.ListAll()
	}
	items, err := uc.menus.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	items, err = uc.menus.ListGlobal()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return uc.menus.ListAll()
}

func (uc *UseCase) scopedBases(restaurantID string) ([]*entity.Base, error) {
	if restaurantID == "" {
		return uc.bases.ListAll()
	}
	items, err := uc.bases.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	items, err = uc.bases.ListGlobal()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return uc.bases.ListAll()
}

func (uc *UseCase) scopedIngredients(restaurantID string) ([]*entity.Ingredient, error) {
	if restaurantID == "" {
		return uc.ingredients.ListAll()
	}
	items, err := uc.ingredients.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	items, err = uc.ingredients.ListGlobal()
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return uc.ingredients.ListAll()
}
