package repository

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// InventarioRepository define el puerto para consultar y actualizar
// existencias por (producto, bodega, ubicación). Las variantes ParaActualizar
// bloquean la fila (SELECT ... FOR UPDATE) y solo tienen sentido dentro de una
// transacción; serializan a los escritores concurrentes sobre la misma
// existencia.
type InventarioRepository interface {
	// Obtener lee la existencia sin bloquear. Devuelve nil si no existe.
	Obtener(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error)
	ObtenerPorID(ctx context.Context, id string) (*entity.InventarioProducto, error)

	// ObtenerParaActualizar bloquea la fila. Si la existencia no existe la crea
	// con cantidades en cero bajo el mismo lock (evita carreras de fila duplicada).
	ObtenerParaActualizar(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error)
	// ObtenerPorIDParaActualizar bloquea una existencia ya conocida por id.
	// Devuelve nil si no existe.
	ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.InventarioProducto, error)

	// ObtenerOCrear garantiza que exista la fila (cantidades en cero) y la
	// devuelve sin bloquearla. Usado por transferencias para referenciar el
	// destino sin tomar su lock.
	ObtenerOCrear(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error)

	Actualizar(ctx context.Context, inv *entity.InventarioProducto) error

	// ListarBajoStock devuelve existencias con Disponible <= StockMinimo.
	// bodegaID vacío = todas las bodegas.
	ListarBajoStock(ctx context.Context, bodegaID string, limit, offset int) ([]*entity.InventarioProducto, error)
}
