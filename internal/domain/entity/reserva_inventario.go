package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva de inventario.
//
//	PENDIENTE ──┬── CONFIRMADA  (el hold se convirtió en SALIDA; sin más transiciones)
//	            ├── LIBERADA    (terminal: el stock vuelve a vendible)
//	            └── CANCELADA   (terminal: igual efecto que LIBERADA, otra razón de negocio)
const (
	ReservaPendiente  = "PENDIENTE"
	ReservaConfirmada = "CONFIRMADA"
	ReservaLiberada   = "LIBERADA"
	ReservaCancelada  = "CANCELADA"
)

// ReservaInventario es un apartado blando de stock: incrementa Comprometido
// sin tocar Disponible y sin generar movimiento en el ledger (una reserva es
// un hold, no un evento de inventario). Mientras esté PENDIENTE su cantidad
// está reflejada en Comprometido del InventarioProducto.
type ReservaInventario struct {
	ID           string
	InventarioID string
	Cantidad     decimal.Decimal
	Estado       string
	OrdenID      *string // orden de trabajo o venta asociada, si la hay
	OrdenLineaID *string
	Motivo       string
	Metadata     map[string]string // bolsa opaca de correlación del caller; el core no la interpreta
	UsuarioID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EsActiva indica si la reserva aún retiene stock comprometido.
func (r *ReservaInventario) EsActiva() bool {
	return r.Estado == ReservaPendiente
}
