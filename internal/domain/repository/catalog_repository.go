package repository

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// BaseRepository port de persistance des bases (DIP).
// restaurantID vide dans ListByRestaurant n'a pas de sens : utiliser ListGlobal
// (entrées partagées, restaurant NULL) ou ListAll (catalogue complet).
type BaseRepository interface {
	GetByID(id string) (*entity.Base, error)
	ListByRestaurant(restaurantID string) ([]*entity.Base, error)
	ListGlobal() ([]*entity.Base, error)
	ListAll() ([]*entity.Base, error)
}

// IngredientRepository port de persistance des ingrédients, stock compris.
type IngredientRepository interface {
	GetByID(id string) (*entity.Ingredient, error)
	GetByIDs(ids []string) ([]*entity.Ingredient, error)
	ListByRestaurant(restaurantID string) ([]*entity.Ingredient, error)
	ListGlobal() ([]*entity.Ingredient, error)
	ListAll() ([]*entity.Ingredient, error)
	UpdateStock(id string, quantity int) error
}

// MenuItemRepository port de persistance des plats du menu.
type MenuItemRepository interface {
	GetByID(id string) (*entity.MenuItem, error)
	ListByRestaurant(restaurantID string) ([]*entity.MenuItem, error)
	ListGlobal() ([]*entity.MenuItem, error)
	ListAll() ([]*entity.MenuItem, error)
	SetDisponible(id string, disponible bool) error
	GetPlatDuJour(restaurantID string) (*entity.MenuItem, error)
}
