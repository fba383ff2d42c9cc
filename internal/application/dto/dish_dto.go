package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
)

// ComposeDishRequest entrée de composition : une base et des ingrédients, ou
// un plat du menu (MenuItemID seul).
type ComposeDishRequest struct {
	BaseID        string   `json:"base_id,omitempty"`
	IngredientIDs []string `json:"ingredients,omitempty"`
	MenuItemID    string   `json:"menu_item_id,omitempty"`
}

// ComposedDishResponse sortie d'un plat composé (immuable).
type ComposedDishResponse struct {
	ID          string          `json:"id"`
	Base        string          `json:"base"`
	Ingredients []string        `json:"ingredients"`
	User        string          `json:"user,omitempty"`
	Prix        decimal.Decimal `json:"prix"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToComposedDishResponse mappe l'entité vers la sortie.
func ToComposedDishResponse(d *entity.ComposedDish) ComposedDishResponse {
	ingredients := d.IngredientIDs
	if ingredients == nil {
		ingredients = []string{}
	}
	return ComposedDishResponse{
		ID:          d.ID,
		Base:        d.BaseNom,
		Ingredients: ingredients,
		User:        d.UserID,
		Prix:        d.Prix,
		CreatedAt:   d.CreatedAt,
	}
}
