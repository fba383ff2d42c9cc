package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
)

func orderOwnedBy(userID, phone string) *entity.Order {
	return &entity.Order{ID: "o1", UserID: userID, Phone: phone, RestaurantID: "r1", Status: StatusPanier}
}

// Le personnel peut tout, quel que soit son périmètre restaurant.
func TestPolicy_PersonnelToutPermis(t *testing.T) {
	o := orderOwnedBy("u1", "")
	for _, role := range []string{entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef} {
		staff := identity.NewAccount("staff1", role, "autre-restaurant")
		assert.True(t, Can(staff, o, ActionView))
		assert.True(t, Can(staff, o, ActionModify))
		assert.True(t, Can(staff, o, ActionSetStatus))
	}
}

// Un client authentifié ne touche que ses propres commandes, et jamais le statut.
func TestPolicy_ComptePropriétaire(t *testing.T) {
	o := orderOwnedBy("u1", "")
	owner := identity.NewAccount("u1", entity.RoleClient, "")
	autre := identity.NewAccount("u2", entity.RoleClient, "")

	assert.True(t, Can(owner, o, ActionView))
	assert.True(t, Can(owner, o, ActionModify))
	assert.False(t, Can(owner, o, ActionSetStatus))

	assert.False(t, Can(autre, o, ActionView))
	assert.False(t, Can(autre, o, ActionModify))
}

// Identité téléphonique : numéro exact requis et commande sans propriétaire.
func TestPolicy_TelephoneExact(t *testing.T) {
	anonyme := orderOwnedBy("", "221771112233")
	assert.True(t, Can(identity.NewPhoneOnly("221771112233"), anonyme, ActionView))
	assert.True(t, Can(identity.NewPhoneOnly("221771112233"), anonyme, ActionModify))
	assert.False(t, Can(identity.NewPhoneOnly("221779998877"), anonyme, ActionView))

	// Une commande liée à un compte n'est jamais accessible par téléphone.
	possedee := orderOwnedBy("u1", "221771112233")
	assert.False(t, Can(identity.NewPhoneOnly("221771112233"), possedee, ActionView))
}

// Un appelant sans identification n'a aucun droit.
func TestPolicy_Anonyme(t *testing.T) {
	o := orderOwnedBy("", "221771112233")
	anon := identity.NewAnonymous()
	assert.False(t, Can(anon, o, ActionView))
	assert.False(t, Can(anon, o, ActionModify))
	assert.False(t, Can(anon, o, ActionSetStatus))
}

// Un rôle staff ne vaut que porté par un compte : un PhoneOnly avec un rôle
// forgé reste sans privilège.
func TestPolicy_RoleForgeSansCompte(t *testing.T) {
	o := orderOwnedBy("u1", "")
	forge := identity.Identity{Kind: identity.PhoneOnly, Role: entity.RoleAdmin, Phone: "221770000000"}
	assert.False(t, Can(forge, o, ActionSetStatus))
	assert.False(t, Can(forge, o, ActionView))
}
