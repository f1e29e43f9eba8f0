package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventarioProducto representa la existencia de un producto en una bodega
// (y opcionalmente una ubicación dentro de ella). Es una proyección
// materializada del ledger de movimientos: Disponible y Comprometido se
// reconstruyen siempre desde movimientos + reservas activas.
//
// Disponible y Comprometido son contadores independientes: el stock vendible
// es Disponible - Comprometido. Solo el ledger de movimientos y el motor de
// reservas mutan estos campos, siempre bajo bloqueo de fila.
type InventarioProducto struct {
	ID            string
	ProductoID    string
	BodegaID      string
	UbicacionID   *string // nil = bodega sin ubicaciones internas
	Disponible    decimal.Decimal
	Comprometido  decimal.Decimal
	StockMinimo   decimal.Decimal
	StockMaximo   decimal.Decimal
	CostoPromedio decimal.Decimal // costo promedio ponderado, recalculado en cada INGRESO
	UpdatedAt     time.Time
}

// Vendible devuelve la cantidad disponible no comprometida por reservas.
func (i *InventarioProducto) Vendible() decimal.Decimal {
	return i.Disponible.Sub(i.Comprometido)
}

// BajoStock indica si la existencia está en o por debajo del mínimo configurado.
func (i *InventarioProducto) BajoStock() bool {
	return i.StockMinimo.GreaterThan(decimal.Zero) && i.Disponible.LessThanOrEqual(i.StockMinimo)
}
