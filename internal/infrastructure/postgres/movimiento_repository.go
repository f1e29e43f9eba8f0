package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del ledger sobre PostgreSQL (usable con pool
// o tx). Append-only: solo INSERT y SELECT.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumnas = `id, inventario_id, producto_id, tipo, cantidad, costo_unitario, origen_tipo, origen_ref, es_reversa, notas, usuario_id, fecha, created_at`

// Crear persiste una entrada del ledger.
func (r *MovimientoRepo) Crear(ctx context.Context, mov *entity.MovimientoInventario) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_inventario (` + movimientoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	usuarioID := (*string)(nil)
	if mov.UsuarioID != "" {
		usuarioID = &mov.UsuarioID
	}
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.InventarioID, mov.ProductoID, mov.Tipo, mov.Cantidad, mov.CostoUnitario,
		mov.OrigenTipo, mov.OrigenRef, mov.EsReversa, mov.Notas, usuarioID, mov.Fecha, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("crear movimiento: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene un movimiento por id. Devuelve nil si no existe.
func (r *MovimientoRepo) ObtenerPorID(ctx context.Context, id string) (*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumnas + ` FROM movimientos_inventario WHERE id = $1`
	var m entity.MovimientoInventario
	var usuarioID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.InventarioID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.CostoUnitario,
		&m.OrigenTipo, &m.OrigenRef, &m.EsReversa, &m.Notas, &usuarioID, &m.Fecha, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener movimiento: %w", err)
	}
	if usuarioID != nil {
		m.UsuarioID = *usuarioID
	}
	return &m, nil
}

// ListarPorProducto lista movimientos de un producto en un rango de fechas.
func (r *MovimientoRepo) ListarPorProducto(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return r.listar(ctx, "producto_id", productoID, desde, hasta, limit, offset)
}

// ListarPorBodega lista movimientos de una bodega en un rango de fechas.
func (r *MovimientoRepo) ListarPorBodega(ctx context.Context, bodegaID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return r.listar(ctx, "bodega_id", bodegaID, desde, hasta, limit, offset)
}

func (r *MovimientoRepo) listar(ctx context.Context, campo, valor string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	// El filtro por bodega entra por la existencia: el movimiento guarda
	// inventario_id, no bodega_id.
	query := `
		SELECT m.id, m.inventario_id, m.producto_id, m.tipo, m.cantidad, m.costo_unitario,
		       m.origen_tipo, m.origen_ref, m.es_reversa, m.notas, m.usuario_id, m.fecha, m.created_at
		FROM movimientos_inventario m`
	args := []any{valor}
	if campo == "bodega_id" {
		query += `
		JOIN inventario_productos i ON i.id = m.inventario_id
		WHERE i.bodega_id = $1`
	} else {
		query += `
		WHERE m.producto_id = $1`
	}
	pos := 2
	if desde != nil {
		query += fmt.Sprintf(" AND m.fecha >= $%d", pos)
		args = append(args, *desde)
		pos++
	}
	if hasta != nil {
		query += fmt.Sprintf(" AND m.fecha <= $%d", pos)
		args = append(args, *hasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		var usuarioID *string
		if err := rows.Scan(&m.ID, &m.InventarioID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.CostoUnitario,
			&m.OrigenTipo, &m.OrigenRef, &m.EsReversa, &m.Notas, &usuarioID, &m.Fecha, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if usuarioID != nil {
			m.UsuarioID = *usuarioID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
