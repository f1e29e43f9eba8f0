package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. El tipo codifica el signo: Cantidad
// siempre se registra como magnitud positiva.
const (
	MovimientoIngreso                = "INGRESO"
	MovimientoSalida                 = "SALIDA"
	MovimientoAjustePositivo         = "AJUSTE_POSITIVO"
	MovimientoAjusteNegativo         = "AJUSTE_NEGATIVO"
	MovimientoTransferenciaEnvio     = "TRANSFERENCIA_ENVIO"
	MovimientoTransferenciaRecepcion = "TRANSFERENCIA_RECEPCION"
)

// MovimientoInventario es una entrada del ledger: inmutable una vez creada,
// nunca se actualiza ni se borra. Es la fuente de verdad de "qué pasó";
// InventarioProducto es solo una proyección de este stream.
type MovimientoInventario struct {
	ID            string
	InventarioID  string
	ProductoID    string
	Tipo          string
	Cantidad      decimal.Decimal  // magnitud, siempre > 0; el tipo implica el signo
	CostoUnitario *decimal.Decimal // obligatorio en INGRESO, nil en el resto
	OrigenTipo    string           // "compra", "orden_trabajo", "ajuste_manual", "transferencia", "anulacion_transferencia", ...
	OrigenRef     string           // código de correlación libre: código de compra, de orden, id de transferencia
	EsReversa     bool             // true si compensa un movimiento previo (anulación de transferencia)
	Notas         string
	UsuarioID     string
	Fecha         time.Time
	CreatedAt     time.Time
}

// EsEntrada indica si el tipo incrementa Disponible.
func EsEntrada(tipo string) bool {
	switch tipo {
	case MovimientoIngreso, MovimientoAjustePositivo, MovimientoTransferenciaRecepcion:
		return true
	}
	return false
}

// EsSalida indica si el tipo decrementa Disponible.
func EsSalida(tipo string) bool {
	switch tipo {
	case MovimientoSalida, MovimientoAjusteNegativo, MovimientoTransferenciaEnvio:
		return true
	}
	return false
}

// TipoMovimientoValido valida que el tipo sea uno de los seis conocidos.
func TipoMovimientoValido(tipo string) bool {
	return EsEntrada(tipo) || EsSalida(tipo)
}
