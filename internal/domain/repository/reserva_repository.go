package repository

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// ReservaRepository define el puerto de persistencia de reservas.
// ObtenerPorIDParaActualizar bloquea la fila de la reserva; el orden de
// bloqueo es siempre reserva → existencia para evitar deadlocks entre
// confirmar/liberar/cancelar concurrentes sobre la misma reserva.
type ReservaRepository interface {
	Crear(ctx context.Context, reserva *entity.ReservaInventario) error
	ObtenerPorID(ctx context.Context, id string) (*entity.ReservaInventario, error)
	ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.ReservaInventario, error)
	Actualizar(ctx context.Context, reserva *entity.ReservaInventario) error
	// ListarActivasPorInventario devuelve las reservas PENDIENTE de una existencia.
	ListarActivasPorInventario(ctx context.Context, inventarioID string) ([]*entity.ReservaInventario, error)
}
