package services

import "errors"

var (
	// ErrNotFound indica que la transacción solicitada no existe
	ErrNotFound = errors.New("Transaction not found")
	// ErrValidation agrupa cualquier dato de entrada inválido
	ErrValidation = errors.New("validation failed")
)

// ValidationError lleva el mensaje que se devuelve al cliente.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validationError(msg string) error {
	return &ValidationError{Msg: msg}
}
