package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/dish"
	"github.com/famadiop1025/Bokkdej/internal/application/dto"
)

// DishHandler gère la composition de plats.
type DishHandler struct {
	uc *dish.UseCase
}

// NewDishHandler construit le handler de plats composés.
func NewDishHandler(uc *dish.UseCase) *DishHandler {
	return &DishHandler{uc: uc}
}

// Compose godoc
// @Summary      Composer un plat (base + ingrédients, ou plat du menu)
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComposeDishRequest  true  "base_id + ingredients, ou menu_item_id"
// @Success      201   {object}  dto.ComposedDishResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dishes [post]
func (h *DishHandler) Compose(c *fiber.Ctx) error {
	var in dto.ComposeDishRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	actor := CallerIdentity(c, "")
	out, err := h.uc.Compose(c.Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Détail d'un plat composé
// @Tags         dishes
// @Produce      json
// @Param        id  path  string  true  "ID du plat composé"
// @Success      200  {object}  dto.ComposedDishResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dishes/{id} [get]
func (h *DishHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
