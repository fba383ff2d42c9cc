package dto

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// RestaurantResponse sortie publique d'un restaurant.
type RestaurantResponse struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Adresse   string `json:"adresse,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Email     string `json:"email,omitempty"`
	Statut    string `json:"statut"`
	Actif     bool   `json:"actif"`
}

// RestaurantMenuResponse menu d'un restaurant donné.
type RestaurantMenuResponse struct {
	Restaurant RestaurantResponse `json:"restaurant"`
	Menu       []MenuItemResponse `json:"menu"`
}

// PlatDuJourResponse plat du jour d'un restaurant, nil si non défini.
type PlatDuJourResponse struct {
	Restaurant RestaurantResponse `json:"restaurant"`
	PlatDuJour *MenuItemResponse  `json:"plat_du_jour"`
	Message    string             `json:"message,omitempty"`
}

// ToRestaurantResponse mappe l'entité vers la sortie.
func ToRestaurantResponse(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Nom:       r.Nom,
		Adresse:   r.Adresse,
		Telephone: r.Telephone,
		Email:     r.Email,
		Statut:    r.Statut,
		Actif:     r.Actif,
	}
}
