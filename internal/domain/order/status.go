// Package order contient la logique pure du cycle de vie d'une commande :
// machine à états des statuts et politique d'autorisation.
package order

// Statuts d'une commande, du panier mutable à l'état terminal.
const (
	StatusPanier        = "panier"
	StatusEnAttente     = "en_attente"
	StatusEnPreparation = "en_preparation"
	StatusPret          = "pret"
	StatusTermine       = "termine"
)

// forward successeur direct de chaque statut dans le pipeline.
var forward = map[string]string{
	StatusPanier:        StatusEnAttente,
	StatusEnAttente:     StatusEnPreparation,
	StatusEnPreparation: StatusPret,
	StatusPret:          StatusTermine,
}

// IsValidStatus vrai si s appartient à l'énumération des statuts.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPanier, StatusEnAttente, StatusEnPreparation, StatusPret, StatusTermine:
		return true
	}
	return false
}

// IsTerminal vrai pour termine : plus aucune transition permise.
func IsTerminal(s string) bool { return s == StatusTermine }

// CanTransition vérifie la légalité d'une transition pilotée par le personnel.
// Autorisé : le pas avant direct, et n'importe lequel des trois états
// intermédiaires depuis tout état non terminal (tolérance aux corrections
// d'opérateur). Jamais de retour au panier, jamais de sortie de termine.
func CanTransition(from, to string) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return false
	}
	if IsTerminal(from) || to == StatusPanier || from == to {
		return false
	}
	if forward[from] == to {
		return true
	}
	switch to {
	case StatusEnAttente, StatusEnPreparation, StatusPret:
		return true
	}
	return false
}

// IsMutable vrai tant que la commande est un panier : seules les commandes en
// statut panier acceptent update/partial_update/delete.
func IsMutable(status string) bool { return status == StatusPanier }

// StatusMessage message de notification push associé à chaque statut atteint.
func StatusMessage(status string) string {
	switch status {
	case StatusEnAttente:
		return "Votre commande a été validée et est en attente de préparation."
	case StatusEnPreparation:
		return "Votre commande est en cours de préparation."
	case StatusPret:
		return "Votre commande est prête !"
	case StatusTermine:
		return "Votre commande a été livrée. Bon appétit !"
	}
	return ""
}

// EstimatedMinutes temps de préparation estimé restant selon le statut.
// Retourne (0, false) quand aucune estimation n'a de sens (panier, termine).
func EstimatedMinutes(status string) (int, bool) {
	switch status {
	case StatusEnAttente:
		return 30, true
	case StatusEnPreparation:
		return 20, true
	case StatusPret:
		return 0, true
	}
	return 0, false
}
