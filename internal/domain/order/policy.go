package order

import (
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
)

// Action sur une commande, paramètre de la politique d'autorisation.
type Action int

const (
	ActionView Action = iota
	ActionModify
	ActionSetStatus
)

// Can est la source unique de vérité des permissions sur une commande :
//   - le personnel (tout périmètre restaurant) peut tout ;
//   - un compte authentifié peut voir et modifier ses propres commandes ;
//   - un appelant anonyme uniquement en présentant le numéro exact stocké sur
//     la commande, à condition qu'elle n'ait pas de compte propriétaire.
//
// ActionSetStatus est réservé au personnel.
func Can(actor identity.Identity, o *entity.Order, action Action) bool {
	if actor.IsStaff() {
		return true
	}
	if action == ActionSetStatus {
		return false
	}
	if actor.Kind == identity.Account && o.UserID != "" && o.UserID == actor.UserID {
		return true
	}
	if actor.Kind == identity.PhoneOnly && o.UserID == "" && actor.Phone != "" && actor.Phone == o.Phone {
		return true
	}
	return false
}
