package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/billing"
	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/application/order"
)

// OrderHandler gère le cycle de vie des commandes : panier, validation,
// avancement des statuts, suivi et reçu.
type OrderHandler struct {
	cart    *order.CartUseCase
	status  *order.StatusUseCase
	queries *order.QueryUseCase
	billing *billing.UseCase
}

// NewOrderHandler construit le handler de commandes.
func NewOrderHandler(cart *order.CartUseCase, status *order.StatusUseCase, queries *order.QueryUseCase, billingUC *billing.UseCase) *OrderHandler {
	return &OrderHandler{cart: cart, status: status, queries: queries, billing: billingUC}
}

// GetPanier godoc
// @Summary      Panier ouvert de l'appelant pour un restaurant
// @Tags         orders
// @Produce      json
// @Param        restaurant  query  string  true   "ID du restaurant"
// @Param        phone       query  string  false  "Numéro (appelant anonyme)"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/panier [get]
func (h *OrderHandler) GetPanier(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.cart.GetPanier(c.Context(), actor, c.Query("restaurant"), c.Query("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpsertCart godoc
// @Summary      Créer ou réécrire le panier ouvert
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCartRequest  true  "restaurant, lignes, total ; phone si anonyme"
// @Success      200   {object}  dto.OrderResponse  "panier existant réécrit"
// @Success      201   {object}  dto.OrderResponse  "panier créé"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/panier [post]
func (h *OrderHandler) UpsertCart(c *fiber.Ctx) error {
	var in dto.UpsertCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	actor := CallerIdentity(c, in.Phone)
	out, err := h.cart.UpsertCart(c.Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out.Order)
	}
	return c.JSON(out.Order)
}

// GetByID godoc
// @Summary      Détail d'une commande
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.queries.GetOrder(c.Context(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Réécrire lignes et total d'un panier
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la commande"
// @Param        body  body  dto.UpsertCartRequest  true  "lignes, total"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpsertCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	actor := CallerIdentity(c, in.Phone)
	out, err := h.cart.UpdateCart(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Supprimer un panier
// @Tags         orders
// @Param        id  path  string  true  "ID de la commande"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	if err := h.cart.DeleteCart(c.Context(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Valider godoc
// @Summary      Valider le panier (panier → en_attente)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/valider [post]
func (h *OrderHandler) Valider(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.status.ValidateCart(c.Context(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Faire avancer le statut (personnel)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la commande"
// @Param        body  body  dto.UpdateStatusRequest  true  "statut cible"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/update-status [post]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	actor := CallerIdentity(c, "")
	out, err := h.status.SetStatus(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suivi godoc
// @Summary      Suivi d'une commande : historique réel et temps estimé
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/suivi [get]
func (h *OrderHandler) Suivi(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.queries.Suivi(c.Context(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Historique godoc
// @Summary      Commandes passées de l'appelant (paniers exclus)
// @Tags         orders
// @Produce      json
// @Param        phone  query  string  false  "Numéro (appelant anonyme)"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/historique [get]
func (h *OrderHandler) Historique(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.queries.Historique(c.Context(), actor, c.Query("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recu godoc
// @Summary      Reçu PDF d'une commande validée
// @Tags         orders
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la commande"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/recu [get]
func (h *OrderHandler) Recu(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	pdf, err := h.billing.Receipt(c.Context(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recu.pdf"`)
	return c.Send(pdf)
}

// List godoc
// @Summary      Commandes du restaurant de l'appelant (personnel)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(50)
// @Success      200  {array}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.queries.ListOrders(c.Context(), actor, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListEvents godoc
// @Summary      Journal des changements de statut (personnel)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(50)
// @Success      200  {array}  dto.OrderEventResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/events [get]
func (h *OrderHandler) ListEvents(c *fiber.Ctx) error {
	actor := CallerIdentity(c, "")
	out, err := h.queries.ListEvents(c.Context(), actor, c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
