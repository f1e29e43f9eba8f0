package repository

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// TransferenciaRepository define el puerto de persistencia de transferencias
// entre bodegas. ObtenerPorIDParaActualizar bloquea la fila de la
// transferencia para revalidar el estado antes de confirmar o anular.
type TransferenciaRepository interface {
	Crear(ctx context.Context, tr *entity.MovimientoTransferencia) error
	ObtenerPorID(ctx context.Context, id string) (*entity.MovimientoTransferencia, error)
	ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.MovimientoTransferencia, error)
	Actualizar(ctx context.Context, tr *entity.MovimientoTransferencia) error
	ListarPendientes(ctx context.Context, limit, offset int) ([]*entity.MovimientoTransferencia, error)
}
