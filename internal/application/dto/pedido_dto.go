package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// El panel hace aritmética sobre total en el cliente: debe viajar como
	// número JSON, no como el string que shopspring/decimal emite por defecto.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreatePedidoRequest entrada para crear un pedido. El total se valida en el
// caso de uso (> 0); los límites de longitud se validan en el handler.
type CreatePedidoRequest struct {
	NumeroPedido string          `json:"numeroPedido" validate:"required,min=1,max=50"`
	Cliente      string          `json:"cliente" validate:"required,min=3,max=150"`
	Total        decimal.Decimal `json:"total"`
}

// UpdatePedidoRequest entrada para actualizar un pedido. Reemplaza siempre los
// tres campos; numeroPedido es inmutable y no forma parte del payload.
type UpdatePedidoRequest struct {
	Cliente string          `json:"cliente" validate:"required,min=3,max=150"`
	Total   decimal.Decimal `json:"total"`
	Estado  string          `json:"estado" validate:"required,max=50"`
}

// PedidoResponse representación externa de un pedido.
// El flag de borrado lógico nunca se expone.
type PedidoResponse struct {
	ID           int64           `json:"id"`
	NumeroPedido string          `json:"numeroPedido"`
	Cliente      string          `json:"cliente"`
	Fecha        time.Time       `json:"fecha"`
	Total        decimal.Decimal `json:"total"`
	Estado       string          `json:"estado"`
}
