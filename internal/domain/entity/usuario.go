package entity

// Roles válidos para Usuario.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario representa un principal autenticable. Se aprovisiona fuera del API
// (cmd/seed); el Auth Gate solo lo consulta, nunca lo modifica.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro
	Nombre       string
	Rol          string // admin, vendedor
}
