package dto

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Status statut courant de la commande sur un conflit de machine à états.
	Status string `json:"status,omitempty"`
	// Field champ en cause sur une erreur de validation.
	Field string `json:"field,omitempty"`
}
