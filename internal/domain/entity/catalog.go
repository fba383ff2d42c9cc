package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Base socle d'un plat composé (riz, mil, couscous...).
// RestaurantID vide = entrée du catalogue global partagé.
type Base struct {
	ID           string
	Nom          string
	Prix         decimal.Decimal
	Description  string
	RestaurantID string
	Disponible   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Types d'ingrédients.
const (
	IngredientLegume   = "legume"
	IngredientViande   = "viande"
	IngredientPoisson  = "poisson"
	IngredientFromage  = "fromage"
	IngredientSauce    = "sauce"
	IngredientEpice    = "epice"
	IngredientProteine = "proteine"
	IngredientAutre    = "autre"
)

// Ingredient entrée de catalogue consommable, avec suivi de stock.
type Ingredient struct {
	ID           string
	Nom          string
	Prix         decimal.Decimal
	Type         string
	RestaurantID string
	StockActuel  int
	StockMin     int
	Unite        string // pièce, kg, g, L, ml
	Fournisseur  string
	Disponible   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock vrai ssi le stock disponible est au niveau ou sous le minimum configuré.
func (i *Ingredient) IsLowStock() bool {
	return i.StockActuel <= i.StockMin
}

// Types de menu.
const (
	MenuPetitDej = "petit_dej"
	MenuDej      = "dej"
	MenuDiner    = "diner"
)

// MenuItem plat pré-défini du menu d'un restaurant.
type MenuItem struct {
	ID               string
	Nom              string
	Prix             decimal.Decimal
	Type             string // petit_dej, dej, diner
	RestaurantID     string
	Description      string
	Calories         int
	TempsPreparation int // minutes
	Disponible       bool
	Populaire        bool
	PlatDuJour       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
