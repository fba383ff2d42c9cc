package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/auth"
	"github.com/famadiop1025/Bokkdej/internal/application/billing"
	"github.com/famadiop1025/Bokkdej/internal/application/catalog"
	"github.com/famadiop1025/Bokkdej/internal/application/dish"
	"github.com/famadiop1025/Bokkdej/internal/application/order"
	"github.com/famadiop1025/Bokkdej/internal/application/restaurant"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CatalogUC    *catalog.UseCase
	DishUC       *dish.UseCase
	RestaurantUC *restaurant.UseCase
	CartUC       *order.CartUseCase
	StatusUC     *order.StatusUseCase
	QueryUC      *order.QueryUseCase
	BillingUC    *billing.UseCase
	JWTSecret    string
}

// Router enregistre les routes de l'API. Les routes de commande acceptent les
// appelants anonymes identifiés par numéro : elles passent par OptionalAuth et
// la politique d'accès est tranchée dans le domaine, pas ici. Les opérations
// du personnel exigent un JWT avec un rôle staff.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authRequired := AuthMiddleware(deps.JWTSecret)
	staffRole := RequireRole(entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef)

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/pin-login", authHandler.PinLogin)
	authGroup.Get("/me", authRequired, authHandler.Me)

	// Compte (protégé)
	users := api.Group("/users", authRequired)
	users.Post("/fcm-token", authHandler.SetFCMToken)

	// Restaurants (public)
	restaurants := api.Group("/restaurants", OptionalAuth(deps.JWTSecret))
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC)
	restaurants.Get("/", restaurantHandler.List)
	restaurants.Get("/:id/menu", restaurantHandler.Menu)
	restaurants.Get("/:id/plat-du-jour", restaurantHandler.PlatDuJour)

	// Catalogue résolu (public ; le personnel voit les plats indisponibles)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/menu", OptionalAuth(deps.JWTSecret), catalogHandler.Menu)
	api.Get("/bases", OptionalAuth(deps.JWTSecret), catalogHandler.Bases)
	api.Get("/ingredients", OptionalAuth(deps.JWTSecret), catalogHandler.Ingredients)

	// Stock et disponibilité (personnel)
	api.Get("/ingredients/low-stock", authRequired, staffRole, catalogHandler.LowStock)
	api.Patch("/ingredients/:id/stock", authRequired, staffRole, catalogHandler.AdjustStock)
	api.Post("/menu/:id/toggle-disponible", authRequired, staffRole, catalogHandler.ToggleDisponible)

	// Plats composés (public)
	dishes := api.Group("/dishes", OptionalAuth(deps.JWTSecret))
	dishHandler := NewDishHandler(deps.DishUC)
	dishes.Post("/", dishHandler.Compose)
	dishes.Get("/:id", dishHandler.GetByID)

	// Commandes. Les routes littérales sont enregistrées avant /:id.
	orders := api.Group("/orders", OptionalAuth(deps.JWTSecret))
	orderHandler := NewOrderHandler(deps.CartUC, deps.StatusUC, deps.QueryUC, deps.BillingUC)
	orders.Get("/panier", orderHandler.GetPanier)
	orders.Post("/panier", orderHandler.UpsertCart)
	orders.Get("/historique", orderHandler.Historique)
	orders.Get("/events", staffRole, orderHandler.ListEvents)
	orders.Get("/", staffRole, orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/valider", orderHandler.Valider)
	orders.Post("/:id/update-status", staffRole, orderHandler.UpdateStatus)
	orders.Get("/:id/suivi", orderHandler.Suivi)
	orders.Get("/:id/recu", orderHandler.Recu)
}
