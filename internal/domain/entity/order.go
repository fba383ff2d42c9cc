package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine lie une commande à un plat composé avec une quantité >= 1.
// Les lignes sont détruites et recréées en bloc à chaque réécriture du panier.
type OrderLine struct {
	ID       string
	OrderID  string
	DishID   string
	Quantity int
}

// Order agrégat panier/commande. Exactement un de UserID ou Phone est renseigné.
// Invariant : au plus une commande ouverte (status=panier) par (identité, restaurant).
type Order struct {
	ID           string
	UserID       string // compte propriétaire, vide pour un panier anonyme
	Phone        string // identité téléphonique, vide pour un compte
	RestaurantID string
	Status       string // voir domain/order
	PrixTotal    decimal.Decimal
	Lines        []OrderLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderEvent trace d'un changement de statut, alimentée à chaque transition
// appliquée. Sert au flux staff et à l'historique du suivi.
type OrderEvent struct {
	ID           string
	OrderID      string
	RestaurantID string
	FromStatus   string
	ToStatus     string
	ActorID      string // vide pour une validation anonyme
	CreatedAt    time.Time
}
