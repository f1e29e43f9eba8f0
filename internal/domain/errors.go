package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura). Los errores con
// contexto (abajo) envuelven estos centinelas, así el caller puede usar
// errors.Is sin perder los datos para armar el mensaje de usuario.
var (
	ErrRegistroNoEncontrado     = errors.New("registro no encontrado")
	ErrEntradaInvalida          = errors.New("entrada inválida")
	ErrDuplicado                = errors.New("recurso duplicado")
	ErrStockInsuficiente        = errors.New("stock insuficiente")
	ErrCostoRequerido           = errors.New("costo unitario requerido para un ingreso")
	ErrReservaNoPendiente       = errors.New("la reserva no está pendiente")
	ErrTransferenciaNoPendiente = errors.New("la transferencia no está pendiente de recepción")
	ErrOrigenDestinoIguales     = errors.New("origen y destino de la transferencia son iguales")
)

// StockInsuficienteError indica que la operación dejaría Disponible (o el
// vendible, en reservas) en negativo. Lleva lo solicitado y lo disponible
// para que el caller arme el mensaje al usuario.
type StockInsuficienteError struct {
	ProductoID  string
	BodegaID    string
	UbicacionID *string
	Solicitado  decimal.Decimal
	Disponible  decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s: solicitado %s, disponible %s",
		e.ProductoID, e.BodegaID, e.Solicitado.String(), e.Disponible.String())
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }

// ReservaNoPendienteError indica un confirmar/liberar/cancelar sobre una
// reserva que ya salió del estado PENDIENTE.
type ReservaNoPendienteError struct {
	ReservaID string
	Estado    string
}

func (e *ReservaNoPendienteError) Error() string {
	return fmt.Sprintf("la reserva %s está en estado %s, se esperaba PENDIENTE", e.ReservaID, e.Estado)
}

func (e *ReservaNoPendienteError) Unwrap() error { return ErrReservaNoPendiente }

// TransferenciaNoPendienteError indica un confirmar/anular sobre una
// transferencia que ya fue completada o anulada.
type TransferenciaNoPendienteError struct {
	TransferenciaID string
	Estado          string
}

func (e *TransferenciaNoPendienteError) Error() string {
	return fmt.Sprintf("la transferencia %s está en estado %s, se esperaba PENDIENTE_RECEPCION", e.TransferenciaID, e.Estado)
}

func (e *TransferenciaNoPendienteError) Unwrap() error { return ErrTransferenciaNoPendiente }
