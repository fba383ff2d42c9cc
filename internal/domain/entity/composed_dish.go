package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComposedDish instantané immuable d'un plat composé : une base plus un
// ensemble d'ingrédients, ou un raccourci vers un plat du menu (ingrédients
// vides). Le prix est figé à la composition et n'est jamais recalculé.
type ComposedDish struct {
	ID            string
	BaseNom       string
	IngredientIDs []string
	UserID        string // vide pour un panier anonyme
	Prix          decimal.Decimal
	CreatedAt     time.Time
}
