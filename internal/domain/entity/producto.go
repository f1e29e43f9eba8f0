package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto o servicio del taller. Los servicios
// (mano de obra) no manejan existencias; los productos sí, por bodega en
// InventarioProducto. El costo promedio vive en la existencia, no aquí.
type Producto struct {
	ID          string
	Codigo      string // código único (SKU o referencia del proveedor)
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal // precio de venta
	EsServicio  bool
	UnidadMedida string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
