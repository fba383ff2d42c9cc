package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
)

// BaseResponse sortie d'une base.
type BaseResponse struct {
	ID          string          `json:"id"`
	Nom         string          `json:"nom"`
	Prix        decimal.Decimal `json:"prix"`
	Description string          `json:"description,omitempty"`
	Restaurant  string          `json:"restaurant,omitempty"`
	Disponible  bool            `json:"disponible"`
}

// IngredientResponse sortie d'un ingrédient, indicateur de stock faible inclus.
type IngredientResponse struct {
	ID          string          `json:"id"`
	Nom         string          `json:"nom"`
	Prix        decimal.Decimal `json:"prix"`
	Type        string          `json:"type"`
	Restaurant  string          `json:"restaurant,omitempty"`
	StockActuel int             `json:"stock_actuel"`
	StockMin    int             `json:"stock_min"`
	Unite       string          `json:"unite"`
	Disponible  bool            `json:"disponible"`
	IsLowStock  bool            `json:"is_low_stock"`
}

// MenuItemResponse sortie d'un plat du menu.
type MenuItemResponse struct {
	ID               string          `json:"id"`
	Nom              string          `json:"nom"`
	Prix             decimal.Decimal `json:"prix"`
	Type             string          `json:"type"`
	Restaurant       string          `json:"restaurant,omitempty"`
	Description      string          `json:"description,omitempty"`
	Calories         int             `json:"calories"`
	TempsPreparation int             `json:"temps_preparation"`
	Disponible       bool            `json:"disponible"`
	Populaire        bool            `json:"populaire"`
	PlatDuJour       bool            `json:"plat_du_jour"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AdjustStockRequest entrée de l'ajustement de stock par le personnel.
type AdjustStockRequest struct {
	Stock *int `json:"stock"`
}

// LowStockAlertResponse alerte de stock faible.
type LowStockAlertResponse struct {
	Count int                  `json:"count"`
	Items []IngredientResponse `json:"items"`
}

// ToBaseResponse mappe l'entité vers la sortie.
func ToBaseResponse(b *entity.Base) BaseResponse {
	return BaseResponse{
		ID:          b.ID,
		Nom:         b.Nom,
		Prix:        b.Prix,
		Description: b.Description,
		Restaurant:  b.RestaurantID,
		Disponible:  b.Disponible,
	}
}

// ToIngredientResponse mappe l'entité vers la sortie.
func ToIngredientResponse(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:          i.ID,
		Nom:         i.Nom,
		Prix:        i.Prix,
		Type:        i.Type,
		Restaurant:  i.RestaurantID,
		StockActuel: i.StockActuel,
		StockMin:    i.StockMin,
		Unite:       i.Unite,
		Disponible:  i.Disponible,
		IsLowStock:  i.IsLowStock(),
	}
}

// ToMenuItemResponse mappe l'entité vers la sortie.
func ToMenuItemResponse(m *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:               m.ID,
		Nom:              m.Nom,
		Prix:             m.Prix,
		Type:             m.Type,
		Restaurant:       m.RestaurantID,
		Description:      m.Description,
		Calories:         m.Calories,
		TempsPreparation: m.TempsPreparation,
		Disponible:       m.Disponible,
		Populaire:        m.Populaire,
		PlatDuJour:       m.PlatDuJour,
		CreatedAt:        m.CreatedAt,
	}
}
