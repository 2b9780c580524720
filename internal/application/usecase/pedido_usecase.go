package usecase

import (
	"errors"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// PedidoUseCase casos de uso del ciclo de vida de pedidos: listar, consultar,
// crear, actualizar y borrar lógicamente. Sin estado entre llamadas.
type PedidoUseCase struct {
	repo repository.PedidoRepository
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(repo repository.PedidoRepository) *PedidoUseCase {
	return &PedidoUseCase{repo: repo}
}

// List devuelve todos los pedidos no eliminados.
func (uc *PedidoUseCase) List() ([]dto.PedidoResponse, error) {
	pedidos, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		items = append(items, *toPedidoResponse(p))
	}
	return items, nil
}

// GetByID obtiene un pedido por ID. Un pedido eliminado es indistinguible de
// uno inexistente: ambos devuelven domain.ErrNotFound.
func (uc *PedidoUseCase) GetByID(id int64) (*dto.PedidoResponse, error) {
	pedido, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	return toPedidoResponse(pedido), nil
}

// Create valida total y unicidad del número antes de persistir.
// El chequeo de existencia es solo un pre-chequeo amable: la garantía real es
// el índice único en la tabla, que también reserva números de pedidos eliminados.
func (uc *PedidoUseCase) Create(in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if !in.Total.IsPositive() {
		return nil, domain.NewValidationError("El total del pedido debe ser mayor a cero.")
	}
	exists, err := uc.repo.ExistsByNumero(in.NumeroPedido)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicadoError(in.NumeroPedido)
	}
	pedido := &entity.Pedido{
		NumeroPedido: in.NumeroPedido,
		Cliente:      in.Cliente,
		Fecha:        time.Now().UTC(),
		Total:        in.Total,
		Estado:       entity.EstadoRegistrado,
	}
	if err := uc.repo.Create(pedido); err != nil {
		// Carrera perdida del pre-chequeo, o número de un pedido eliminado.
		if errors.Is(err, domain.ErrNumeroDuplicado) {
			return nil, duplicadoError(in.NumeroPedido)
		}
		return nil, err
	}
	return toPedidoResponse(pedido), nil
}

// Update reemplaza cliente, total y estado de un pedido existente.
// No revalida el total ni toca numeroPedido/fecha.
func (uc *PedidoUseCase) Update(id int64, in dto.UpdatePedidoRequest) error {
	pedido, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNotFound
	}
	pedido.Cliente = in.Cliente
	pedido.Total = in.Total
	pedido.Estado = in.Estado
	return uc.repo.Update(pedido)
}

// Delete marca el pedido como eliminado. El registro y su número permanecen
// en la tabla, por lo que el número sigue bloqueado para nuevos pedidos.
func (uc *PedidoUseCase) Delete(id int64) error {
	pedido, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNotFound
	}
	pedido.IsDeleted = true
	return uc.repo.Update(pedido)
}

func duplicadoError(numero string) *domain.ValidationError {
	return domain.NewValidationError("El número de pedido '%s' ya se encuentra registrado en el sistema.", numero)
}

func toPedidoResponse(p *entity.Pedido) *dto.PedidoResponse {
	if p == nil {
		return nil
	}
	return &dto.PedidoResponse{
		ID:           p.ID,
		NumeroPedido: p.NumeroPedido,
		Cliente:      p.Cliente,
		Fecha:        p.Fecha,
		Total:        p.Total,
		Estado:       p.Estado,
	}
}
