package inventario

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// ConsultaUseCase agrupa las lecturas del inventario (sin bloqueo, fuera de
// transacción): snapshots de existencias, historial del ledger y estado de
// reservas y transferencias. Los repos aquí van atados al pool, no a una tx.
type ConsultaUseCase struct {
	invRepo      repository.InventarioRepository
	movRepo      repository.MovimientoRepository
	reservaRepo  repository.ReservaRepository
	transferRepo repository.TransferenciaRepository
}

// NewConsultaUseCase construye el caso de uso de solo lectura.
func NewConsultaUseCase(
	invRepo repository.InventarioRepository,
	movRepo repository.MovimientoRepository,
	reservaRepo repository.ReservaRepository,
	transferRepo repository.TransferenciaRepository,
) *ConsultaUseCase {
	return &ConsultaUseCase{
		invRepo:      invRepo,
		movRepo:      movRepo,
		reservaRepo:  reservaRepo,
		transferRepo: transferRepo,
	}
}

// ObtenerExistencia devuelve el snapshot de una existencia. Si nunca hubo
// movimientos para la tripleta devuelve un registro en cero (lectura, no
// materializa la fila).
func (uc *ConsultaUseCase) ObtenerExistencia(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	inv, err := uc.invRepo.Obtener(ctx, productoID, bodegaID, ubicacionID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return &entity.InventarioProducto{
			ProductoID:    productoID,
			BodegaID:      bodegaID,
			UbicacionID:   ubicacionID,
			Disponible:    decimal.Zero,
			Comprometido:  decimal.Zero,
			CostoPromedio: decimal.Zero,
		}, nil
	}
	return inv, nil
}

// ListarBajoStock devuelve existencias en o por debajo de su mínimo.
func (uc *ConsultaUseCase) ListarBajoStock(ctx context.Context, bodegaID string, limit, offset int) ([]*entity.InventarioProducto, error) {
	return uc.invRepo.ListarBajoStock(ctx, bodegaID, limit, offset)
}

// ListarMovimientosPorProducto devuelve el historial del ledger de un producto.
func (uc *ConsultaUseCase) ListarMovimientosPorProducto(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return uc.movRepo.ListarPorProducto(ctx, productoID, desde, hasta, limit, offset)
}

// ListarMovimientosPorBodega devuelve el historial del ledger de una bodega.
func (uc *ConsultaUseCase) ListarMovimientosPorBodega(ctx context.Context, bodegaID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return uc.movRepo.ListarPorBodega(ctx, bodegaID, desde, hasta, limit, offset)
}

// ObtenerReserva devuelve una reserva por id.
func (uc *ConsultaUseCase) ObtenerReserva(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	reserva, err := uc.reservaRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reserva == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	return reserva, nil
}

// ListarReservasActivas devuelve las reservas PENDIENTE de una existencia.
func (uc *ConsultaUseCase) ListarReservasActivas(ctx context.Context, inventarioID string) ([]*entity.ReservaInventario, error) {
	return uc.reservaRepo.ListarActivasPorInventario(ctx, inventarioID)
}

// ObtenerTransferencia devuelve una transferencia por id.
func (uc *ConsultaUseCase) ObtenerTransferencia(ctx context.Context, id string) (*entity.MovimientoTransferencia, error) {
	tr, err := uc.transferRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	return tr, nil
}

// ListarTransferenciasPendientes devuelve transferencias aún no recibidas,
// para que el sistema externo de alertas decida sobre recepciones vencidas.
func (uc *ConsultaUseCase) ListarTransferenciasPendientes(ctx context.Context, limit, offset int) ([]*entity.MovimientoTransferencia, error) {
	return uc.transferRepo.ListarPendientes(ctx, limit, offset)
}
