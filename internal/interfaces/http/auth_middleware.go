package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	"github.com/famadiop1025/Bokkdej/pkg/jwt"
)

// Clés Locals pour les claims du JWT dans Fiber.
const (
	LocalUserID       = "user_id"
	LocalRole         = "role"
	LocalRestaurantID = "restaurant_id"
)

// AuthMiddleware valide le Bearer Token JWT et charge UserID, Role et
// RestaurantID dans c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "en-tête Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format attendu: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vide"})
		}
		userID, role, restaurantID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token invalide ou expiré"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalRestaurantID, restaurantID)
		return c.Next()
	}
}

// OptionalAuth charge les claims si un Bearer Token est présent, et laisse
// passer les appelants anonymes. Un token présent mais invalide est refusé :
// un client qui croit être connecté ne doit pas retomber en anonyme.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return AuthMiddleware(jwtSecret)(c)
	}
}

// RequireRole autorise uniquement les rôles listés (après AuthMiddleware).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sans rôle"})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rôle insuffisant pour cette opération"})
	}
}

// GetUserID retourne l'UserID du contexte (après le middleware d'auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole retourne le rôle du contexte.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetRestaurantID retourne l'affiliation restaurant du contexte.
func GetRestaurantID(c *fiber.Ctx) string {
	return localString(c, LocalRestaurantID)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// CallerIdentity reconstruit l'identité de l'appelant : un compte si le JWT a
// été validé, sinon une identité téléphonique si un numéro est fourni (query
// ?phone= ou corps de requête), sinon anonyme.
func CallerIdentity(c *fiber.Ctx, bodyPhone string) identity.Identity {
	if userID := GetUserID(c); userID != "" {
		return identity.NewAccount(userID, GetRole(c), GetRestaurantID(c))
	}
	phone := bodyPhone
	if phone == "" {
		phone = c.Query("phone")
	}
	if phone != "" {
		return identity.NewPhoneOnly(phone)
	}
	return identity.NewAnonymous()
}
