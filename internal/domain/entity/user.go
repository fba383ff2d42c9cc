package entity

import "time"

// Rôles valides pour User. Les trois premiers forment le personnel.
const (
	RoleAdmin     = "admin"
	RolePersonnel = "personnel"
	RoleChef      = "chef"
	RoleClient    = "client"
)

// User compte enregistré. Les rôles du personnel portent une affiliation
// restaurant utilisée pour le périmètre de visibilité.
type User struct {
	ID           string
	Username     string
	Phone        string // unique
	PasswordHash string // bcrypt, jamais en clair après persistance
	PinCode      string // PIN de connexion du personnel (optionnel)
	Role         string // admin, personnel, chef, client
	RestaurantID string
	FCMToken     string
	Actif        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
