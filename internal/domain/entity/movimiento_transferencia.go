package entity

import "time"

// Estados de una transferencia entre bodegas.
//
//	PENDIENTE_RECEPCION ──┬── COMPLETADA (el destino recibió la mercancía)
//	                      └── ANULADA    (se revirtió el débito en el origen)
const (
	TransferenciaPendienteRecepcion = "PENDIENTE_RECEPCION"
	TransferenciaCompletada         = "COMPLETADA"
	TransferenciaAnulada            = "ANULADA"
)

// MovimientoTransferencia coordina el par débito/crédito de una transferencia
// entre dos existencias del mismo producto. El envío se aplica al crearla; la
// recepción queda persistida pero sin efecto sobre el destino hasta confirmar.
// Envío y recepción siempre referencian (bodega, ubicación) distintas con la
// misma magnitud.
type MovimientoTransferencia struct {
	ID                    string
	Estado                string
	MovimientoEnvioID     string
	MovimientoRecepcionID string
	Referencia            string            // correlación libre del caller (ej. código de remisión)
	Notas                 string
	Metadata              map[string]string // bolsa opaca del caller, el core no la interpreta
	UsuarioID             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
