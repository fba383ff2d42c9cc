// Package order (application) orchestre le cycle de vie panier -> commande :
// réécriture du panier, validation, transitions de statut pilotées par le
// personnel, historique et suivi.
package order

import (
	"context"

	"github.com/famadiop1025/Bokkdej/internal/application/notify"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

// TxRepos dépôts liés à une même transaction. Le changement de statut et son
// événement de journal sont écrits ensemble ou pas du tout.
type TxRepos struct {
	Orders repository.OrderRepository
	Events repository.OrderEventRepository
}

// TxRunner exécute fn dans une transaction. Rollback si fn retourne une erreur.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

// Notifier diffusion asynchrone des changements de statut. Implémenté par
// notify.Dispatcher ; nil = notifications désactivées.
type Notifier interface {
	Dispatch(ev notify.StatusChangedEvent, delivery notify.Delivery)
}
