package entity

import "time"

// Statuts de validation d'un restaurant (workflow d'onboarding externe).
const (
	RestaurantEnAttente = "en_attente"
	RestaurantValide    = "valide"
	RestaurantSuspendu  = "suspendu"
	RestaurantRejete    = "rejete"
)

// Restaurant frontière de tenant : possède ses entrées de catalogue et ses commandes.
type Restaurant struct {
	ID              string
	Nom             string // unique
	Adresse         string
	Telephone       string
	Email           string
	Statut          string // en_attente, valide, suspendu, rejete
	Actif           bool
	WavePaymentLink string // lien de paiement affiché en QR sur le reçu
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EstVisible indique si le restaurant est visible du public (validé et actif).
func (r *Restaurant) EstVisible() bool {
	return r.Statut == RestaurantValide && r.Actif
}
