// Package phone normalise les numéros de téléphone avant l'envoi de SMS.
package phone

import "strings"

// Normalize ne garde que les chiffres et préfixe l'indicatif pays par défaut
// si le numéro ne commence pas déjà par celui-ci. Retourne "" si le numéro
// ne contient aucun chiffre.
func Normalize(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if countryCode != "" && !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}
