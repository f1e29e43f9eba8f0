package repository

import (
	"context"
	"time"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia del ledger de
// movimientos. El ledger es append-only: no hay Update ni Delete.
type MovimientoRepository interface {
	Crear(ctx context.Context, mov *entity.MovimientoInventario) error
	ObtenerPorID(ctx context.Context, id string) (*entity.MovimientoInventario, error)
	ListarPorProducto(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
	ListarPorBodega(ctx context.Context, bodegaID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
}
