package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/restaurant"
)

// RestaurantHandler expose la liste publique des restaurants et leurs menus.
type RestaurantHandler struct {
	uc *restaurant.UseCase
}

// NewRestaurantHandler construit le handler de restaurants.
func NewRestaurantHandler(uc *restaurant.UseCase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

// List godoc
// @Summary      Restaurants validés et actifs
// @Tags         restaurants
// @Produce      json
// @Success      200  {array}  dto.RestaurantResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListVisible(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Menu godoc
// @Summary      Menu résolu d'un restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id  path  string  true  "ID du restaurant"
// @Success      200  {object}  dto.RestaurantMenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id}/menu [get]
func (h *RestaurantHandler) Menu(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.uc.Menu(c.Context(), c.Params("id"), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PlatDuJour godoc
// @Summary      Plat du jour d'un restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id  path  string  true  "ID du restaurant"
// @Success      200  {object}  dto.PlatDuJourResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id}/plat-du-jour [get]
func (h *RestaurantHandler) PlatDuJour(c *fiber.Ctx) error {
	out, err := h.uc.PlatDuJour(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
