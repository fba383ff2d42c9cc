package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/catalog"
	"github.com/famadiop1025/Bokkdej/internal/application/dto"
)

// CatalogHandler expose le catalogue résolu (menu, bases, ingrédients) et les
// opérations de stock du personnel.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construit le handler de catalogue.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Menu godoc
// @Summary      Menu résolu d'un restaurant (repli global si vide)
// @Tags         catalog
// @Produce      json
// @Param        restaurant  query  string  false  "ID du restaurant"
// @Success      200  {array}  dto.MenuItemResponse
// @Router       /api/menu [get]
func (h *CatalogHandler) Menu(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.uc.ResolveMenu(c.Context(), c.Query("restaurant"), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Bases godoc
// @Summary      Bases résolues d'un restaurant
// @Tags         catalog
// @Produce      json
// @Param        restaurant  query  string  false  "ID du restaurant"
// @Success      200  {array}  dto.BaseResponse
// @Router       /api/bases [get]
func (h *CatalogHandler) Bases(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.uc.ResolveBases(c.Context(), c.Query("restaurant"), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ingredients godoc
// @Summary      Ingrédients résolus d'un restaurant
// @Tags         catalog
// @Produce      json
// @Param        restaurant  query  string  false  "ID du restaurant"
// @Success      200  {array}  dto.IngredientResponse
// @Router       /api/ingredients [get]
func (h *CatalogHandler) Ingredients(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.uc.ResolveIngredients(c.Context(), c.Query("restaurant"), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajuster le stock d'un ingrédient (personnel)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de l'ingrédient"
// @Param        body  body  dto.AdjustStockRequest  true  "stock cible"
// @Success      200   {object}  dto.IngredientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id}/stock [patch]
func (h *CatalogHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ingrédients sous leur seuil d'alerte (personnel)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertResponse
// @Router       /api/ingredients/low-stock [get]
func (h *CatalogHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockAlert(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleDisponible godoc
// @Summary      Basculer la disponibilité d'un plat du menu (personnel)
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID du plat"
// @Success      200  {object}  dto.MenuItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/toggle-disponible [post]
func (h *CatalogHandler) ToggleDisponible(c *fiber.Ctx) error {
	out, err := h.uc.ToggleDisponible(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
