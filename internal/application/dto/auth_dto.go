package dto

import (
	"time"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
)

// RegisterRequest entrée d'inscription d'un compte client.
type RegisterRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest connexion par identifiant et mot de passe.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PinLoginRequest connexion du personnel par PIN, téléphone optionnel.
type PinLoginRequest struct {
	Pin   string `json:"pin"`
	Phone string `json:"phone,omitempty"`
}

// SetFCMTokenRequest enregistrement du jeton push du compte connecté.
type SetFCMTokenRequest struct {
	FCMToken string `json:"fcm_token"`
}

// UserResponse sortie d'un compte (jamais de hash ni de PIN).
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	Restaurant string    `json:"restaurant,omitempty"`
	Actif      bool      `json:"actif"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginResponse jeton d'accès plus le compte.
type LoginResponse struct {
	Token string       `json:"access"`
	User  UserResponse `json:"user"`
}

// ToUserResponse mappe l'entité vers la sortie.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Phone:      u.Phone,
		Role:       u.Role,
		Restaurant: u.RestaurantID,
		Actif:      u.Actif,
		CreatedAt:  u.CreatedAt,
	}
}
