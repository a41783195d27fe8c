package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidQuantity    = errors.New("la quantité doit être un entier positif")
	ErrInvalidAmount      = errors.New("montant invalide")
	ErrInvalidSettlement  = errors.New("règlement invalide")
	ErrEmptyOrder         = errors.New("impossible d'enregistrer une commande vide")
	ErrCodeGeneration     = errors.New("génération du code de commande impossible")
	ErrSaveFailed         = errors.New("enregistrement de la commande impossible")
)

// ContactRequiredError blocks submission when a debt is recorded without client contact info.
type ContactRequiredError struct {
	Message string
}

func (e *ContactRequiredError) Error() string { return e.Message }

// ValidationError carries the business validation messages returned for an order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// IsValidation reports whether err is a business validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
