package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// PedidoRepository define el puerto de persistencia para Pedido (DIP).
// No aplica reglas de negocio: las consultas excluyen pedidos eliminados
// porque el borrado es lógico, nada más.
type PedidoRepository interface {
	// ListAll devuelve todos los pedidos no eliminados.
	ListAll() ([]*entity.Pedido, error)
	// GetByID devuelve nil si el pedido no existe o está eliminado.
	GetByID(id int64) (*entity.Pedido, error)
	// ExistsByNumero indica si existe un pedido no eliminado con ese número.
	ExistsByNumero(numero string) (bool, error)
	// Create persiste el pedido y asigna su ID. Devuelve domain.ErrNumeroDuplicado
	// si el número ya está reservado (aunque sea por un pedido eliminado).
	Create(p *entity.Pedido) error
	Update(p *entity.Pedido) error
}
