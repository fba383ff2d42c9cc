package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Numéro local : seuls les chiffres sont gardés et l'indicatif est préfixé.
func TestNormalize_NumeroLocal(t *testing.T) {
	assert.Equal(t, "221771112233", Normalize("77 111 22 33", "221"))
}

// Numéro déjà international : l'indicatif n'est pas doublé.
func TestNormalize_DejaPrefixe(t *testing.T) {
	assert.Equal(t, "221771112233", Normalize("+221 77 111 22 33", "221"))
	assert.Equal(t, "221771112233", Normalize("221771112233", "221"))
}

// Caractères non numériques ignorés.
func TestNormalize_CaracteresParasites(t *testing.T) {
	assert.Equal(t, "221770001122", Normalize("(77) 000-11.22", "221"))
}

// Sans indicatif configuré, le numéro est retourné tel quel (chiffres seuls).
func TestNormalize_SansIndicatif(t *testing.T) {
	assert.Equal(t, "771112233", Normalize("77 111 22 33", ""))
}

// Aucun chiffre : chaîne vide, le puits SMS saura sauter ce destinataire.
func TestNormalize_Vide(t *testing.T) {
	assert.Equal(t, "", Normalize("abc", "221"))
	assert.Equal(t, "", Normalize("", "221"))
}
