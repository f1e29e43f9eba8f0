package inventario

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda operación pública del motor de
// inventario corre completa dentro de una sola transacción: si fn falla se
// hace Rollback de todo (nunca queda un movimiento persistido sin su
// existencia actualizada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		reservaRepo repository.ReservaRepository,
		transferRepo repository.TransferenciaRepository,
	) error) error
}
