package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrNumeroDuplicado lo devuelve la capa de persistencia cuando el índice
	// único de numero_pedido rechaza un insert (incluye números de pedidos
	// ya eliminados: siguen reservados).
	ErrNumeroDuplicado = errors.New("número de pedido duplicado")
)

// ValidationError es una regla de negocio violada por datos del llamador.
// Lleva un mensaje legible; no es una falla del sistema y no se registra como tal.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye un ValidationError con formato printf.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
