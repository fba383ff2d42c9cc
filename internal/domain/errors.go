package domain

import (
	"errors"
	"fmt"
)

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound     = errors.New("ressource introuvable")
	ErrInvalidInput = errors.New("entrée invalide")
	ErrDuplicate    = errors.New("ressource dupliquée")
	ErrUnauthorized = errors.New("non authentifié")
	ErrForbidden    = errors.New("accès refusé")
	ErrConflict     = errors.New("conflit avec l'état actuel")
)

// ValidationError porte un message au niveau champ. errors.Is(err, ErrInvalidInput)
// reste vrai pour permettre un mapping HTTP uniforme.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap rattache ValidationError à ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construit une erreur de validation pour un champ donné.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError signale une violation de la machine à états en incluant le
// statut courant pour que l'appelant puisse réagir.
type ConflictError struct {
	CurrentStatus string
	Message       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (statut actuel: %s)", e.Message, e.CurrentStatus)
}

// Unwrap rattache ConflictError à ErrConflict.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError construit une erreur de conflit portant le statut courant.
func NewConflictError(currentStatus, message string) error {
	return &ConflictError{CurrentStatus: currentStatus, Message: message}
}
