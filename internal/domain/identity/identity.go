// Package identity modélise "qui demande" : un compte enregistré ou un simple
// numéro de téléphone. Les deux variantes passent par le même type pour éviter
// les vérifications de nil dispersées dans le stockage et l'autorisation.
package identity

import (
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/pkg/phone"
)

// Kind variante d'identité.
type Kind int

const (
	// Anonymous aucun identifiant présenté.
	Anonymous Kind = iota
	// Account compte authentifié (JWT).
	Account
	// PhoneOnly identité faible par numéro de téléphone (compatibilité :
	// aucune preuve de possession au-delà de la connaissance du numéro).
	PhoneOnly
)

// Identity l'appelant d'une opération.
type Identity struct {
	Kind         Kind
	UserID       string
	Role         string
	RestaurantID string // affiliation restaurant des rôles du personnel
	Phone        string // renseigné pour PhoneOnly
}

// NewAccount identité d'un compte authentifié.
func NewAccount(userID, role, restaurantID string) Identity {
	return Identity{Kind: Account, UserID: userID, Role: role, RestaurantID: restaurantID}
}

// NewPhoneOnly identité téléphonique anonyme.
func NewPhoneOnly(phone string) Identity {
	return Identity{Kind: PhoneOnly, Phone: phone}
}

// NewAnonymous appelant sans identification.
func NewAnonymous() Identity {
	return Identity{Kind: Anonymous}
}

// NormalizePhone retourne une copie de l'identité avec le numéro au format
// canonique. Le stockage n'enregistre que des numéros normalisés : toute
// comparaison d'autorisation doit porter sur la même forme, sinon un client
// anonyme présentant son numéro tel que saisi serait refusé sur sa propre
// commande.
func (id Identity) NormalizePhone(countryCode string) Identity {
	if id.Kind == PhoneOnly {
		id.Phone = phone.Normalize(id.Phone, countryCode)
	}
	return id
}

// IsStaff vrai pour les rôles admin, personnel et chef.
func (id Identity) IsStaff() bool {
	switch id.Role {
	case entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef:
		return id.Kind == Account
	}
	return false
}

// IsAuthenticated vrai pour un compte.
func (id Identity) IsAuthenticated() bool {
	return id.Kind == Account
}
