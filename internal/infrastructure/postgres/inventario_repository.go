package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository sobre PostgreSQL
// (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

const inventarioColumnas = `id, producto_id, bodega_id, ubicacion_id, disponible, comprometido, stock_minimo, stock_maximo, costo_promedio, updated_at`

// Obtener lee la existencia sin bloquear. Devuelve nil si no hay fila.
func (r *InventarioRepo) Obtener(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumnas + `
		FROM inventario_productos
		WHERE producto_id = $1 AND bodega_id = $2 AND ubicacion_id IS NOT DISTINCT FROM $3`
	inv, err := r.escanearUno(r.q.QueryRow(ctx, query, productoID, bodegaID, ubicacionID))
	if err != nil {
		return nil, fmt.Errorf("obtener inventario: %w", err)
	}
	return inv, nil
}

// ObtenerPorID lee la existencia por id sin bloquear. Devuelve nil si no existe.
func (r *InventarioRepo) ObtenerPorID(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	query := `SELECT ` + inventarioColumnas + ` FROM inventario_productos WHERE id = $1`
	inv, err := r.escanearUno(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("obtener inventario por id: %w", err)
	}
	return inv, nil
}

// ObtenerParaActualizar bloquea la fila (SELECT FOR UPDATE); si no existe la
// crea en cero primero. El INSERT ... ON CONFLICT DO NOTHING colapsa la
// carrera de dos transacciones creando la misma tripleta: ambas terminan
// serializadas sobre la única fila por el índice único.
func (r *InventarioRepo) ObtenerParaActualizar(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	insert := `
		INSERT INTO inventario_productos (id, producto_id, bodega_id, ubicacion_id, disponible, comprometido, stock_minimo, stock_maximo, costo_promedio, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0, 0, now())
		ON CONFLICT (producto_id, bodega_id, COALESCE(ubicacion_id, '')) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productoID, bodegaID, ubicacionID); err != nil {
		return nil, fmt.Errorf("crear inventario en cero: %w", err)
	}
	query := `
		SELECT ` + inventarioColumnas + `
		FROM inventario_productos
		WHERE producto_id = $1 AND bodega_id = $2 AND ubicacion_id IS NOT DISTINCT FROM $3
		FOR UPDATE`
	inv, err := r.escanearUno(r.q.QueryRow(ctx, query, productoID, bodegaID, ubicacionID))
	if err != nil {
		return nil, fmt.Errorf("obtener inventario for update: %w", err)
	}
	if inv == nil {
		// La fila se insertó arriba en esta misma tx; no debería faltar.
		return nil, fmt.Errorf("obtener inventario for update: fila ausente tras insert")
	}
	return inv, nil
}

// ObtenerPorIDParaActualizar bloquea una existencia conocida. Devuelve nil si no existe.
func (r *InventarioRepo) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	query := `SELECT ` + inventarioColumnas + ` FROM inventario_productos WHERE id = $1 FOR UPDATE`
	inv, err := r.escanearUno(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("obtener inventario por id for update: %w", err)
	}
	return inv, nil
}

// ObtenerOCrear materializa la fila (en cero) si falta y la devuelve sin FOR
// UPDATE: las transferencias la usan para anclar la recepción pendiente sin
// tomar el lock del destino.
func (r *InventarioRepo) ObtenerOCrear(ctx context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	insert := `
		INSERT INTO inventario_productos (id, producto_id, bodega_id, ubicacion_id, disponible, comprometido, stock_minimo, stock_maximo, costo_promedio, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0, 0, now())
		ON CONFLICT (producto_id, bodega_id, COALESCE(ubicacion_id, '')) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productoID, bodegaID, ubicacionID); err != nil {
		return nil, fmt.Errorf("crear inventario en cero: %w", err)
	}
	inv, err := r.Obtener(ctx, productoID, bodegaID, ubicacionID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("obtener o crear inventario: fila ausente tras insert")
	}
	return inv, nil
}

// Actualizar persiste los contadores y el costo de una existencia ya bloqueada.
func (r *InventarioRepo) Actualizar(ctx context.Context, inv *entity.InventarioProducto) error {
	query := `
		UPDATE inventario_productos
		SET disponible = $2, comprometido = $3, stock_minimo = $4, stock_maximo = $5, costo_promedio = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Disponible, inv.Comprometido, inv.StockMinimo, inv.StockMaximo, inv.CostoPromedio, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("actualizar inventario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar inventario %s: fila no encontrada", inv.ID)
	}
	return nil
}

// ListarBajoStock devuelve existencias con disponible <= stock_minimo (> 0).
func (r *InventarioRepo) ListarBajoStock(ctx context.Context, bodegaID string, limit, offset int) ([]*entity.InventarioProducto, error) {
	query := `
		SELECT ` + inventarioColumnas + `
		FROM inventario_productos
		WHERE stock_minimo > 0 AND disponible <= stock_minimo`
	args := []any{}
	if bodegaID != "" {
		query += ` AND bodega_id = $1 ORDER BY disponible ASC LIMIT $2 OFFSET $3`
		args = append(args, bodegaID, limit, offset)
	} else {
		query += ` ORDER BY disponible ASC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar bajo stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventarioProducto
	for rows.Next() {
		var inv entity.InventarioProducto
		if err := rows.Scan(&inv.ID, &inv.ProductoID, &inv.BodegaID, &inv.UbicacionID,
			&inv.Disponible, &inv.Comprometido, &inv.StockMinimo, &inv.StockMaximo,
			&inv.CostoPromedio, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InventarioRepo) escanearUno(row pgx.Row) (*entity.InventarioProducto, error) {
	var inv entity.InventarioProducto
	err := row.Scan(&inv.ID, &inv.ProductoID, &inv.BodegaID, &inv.UbicacionID,
		&inv.Disponible, &inv.Comprometido, &inv.StockMinimo, &inv.StockMaximo,
		&inv.CostoPromedio, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}
