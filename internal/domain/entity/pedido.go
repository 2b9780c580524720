package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado inicial de todo pedido recién creado.
const EstadoRegistrado = "Registrado"

// Pedido representa un pedido de cliente.
// NumeroPedido es único entre pedidos no eliminados y no cambia después de crear.
type Pedido struct {
	ID           int64
	NumeroPedido string
	Cliente      string
	Fecha        time.Time
	Total        decimal.Decimal
	Estado       string
	IsDeleted    bool // borrado lógico: el registro nunca se elimina físicamente
}
