package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// UsuarioRepository define el puerto de consulta de credenciales.
// Solo lectura: el ciclo de vida de usuarios está fuera del API.
type UsuarioRepository interface {
	// FindByEmail devuelve nil si no existe un usuario con ese email.
	FindByEmail(email string) (*entity.Usuario, error)
}
