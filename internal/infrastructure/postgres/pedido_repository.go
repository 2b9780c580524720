package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL.
type PedidoRepo struct {
	pool *pgxpool.Pool
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos.
func NewPedidoRepository(pool *pgxpool.Pool) *PedidoRepo {
	return &PedidoRepo{pool: pool}
}

// ListAll devuelve todos los pedidos no eliminados.
func (r *PedidoRepo) ListAll() ([]*entity.Pedido, error) {
	query := `
		SELECT id, numero_pedido, cliente, fecha, total, estado, is_deleted
		FROM pedidos WHERE NOT is_deleted`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.NumeroPedido, &p.Cliente, &p.Fecha, &p.Total, &p.Estado, &p.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe o está eliminado.
func (r *PedidoRepo) GetByID(id int64) (*entity.Pedido, error) {
	query := `
		SELECT id, numero_pedido, cliente, fecha, total, estado, is_deleted
		FROM pedidos WHERE id = $1 AND NOT is_deleted`
	var p entity.Pedido
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.NumeroPedido, &p.Cliente, &p.Fecha, &p.Total, &p.Estado, &p.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido by id: %w", err)
	}
	return &p, nil
}

// ExistsByNumero indica si existe un pedido no eliminado con ese número.
func (r *PedidoRepo) ExistsByNumero(numero string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM pedidos WHERE numero_pedido = $1 AND NOT is_deleted)`,
		numero,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists pedido by numero: %w", err)
	}
	return exists, nil
}

// Create persiste un nuevo pedido y asigna su ID.
func (r *PedidoRepo) Create(p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (numero_pedido, cliente, fecha, total, estado, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.pool.QueryRow(context.Background(), query,
		p.NumeroPedido, p.Cliente, p.Fecha, p.Total, p.Estado, p.IsDeleted,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumeroDuplicado
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// Update actualiza los campos mutables de un pedido (numero_pedido y fecha
// son inmutables y no se tocan).
func (r *PedidoRepo) Update(p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET cliente = $2, total = $3, estado = $4, is_deleted = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Cliente, p.Total, p.Estado, p.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	return nil
}
