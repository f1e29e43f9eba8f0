package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

// ReservaRepo implementación de ReservaRepository sobre PostgreSQL (usable
// con pool o tx). Metadata se guarda como JSONB opaco.
type ReservaRepo struct {
	q Querier
}

// NewReservaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservaRepository(q Querier) *ReservaRepo {
	return &ReservaRepo{q: q}
}

const reservaColumnas = `id, inventario_id, cantidad, estado, orden_id, orden_linea_id, motivo, metadata, usuario_id, created_at, updated_at`

// Crear persiste una reserva nueva.
func (r *ReservaRepo) Crear(ctx context.Context, reserva *entity.ReservaInventario) error {
	if reserva.ID == "" {
		reserva.ID = uuid.New().String()
	}
	metadata, err := marshalMetadata(reserva.Metadata)
	if err != nil {
		return fmt.Errorf("crear reserva: %w", err)
	}
	query := `
		INSERT INTO reservas_inventario (` + reservaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		reserva.ID, reserva.InventarioID, reserva.Cantidad, reserva.Estado,
		reserva.OrdenID, reserva.OrdenLineaID, reserva.Motivo, metadata,
		reserva.UsuarioID, reserva.CreatedAt, reserva.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("crear reserva: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene una reserva por id. Devuelve nil si no existe.
func (r *ReservaRepo) ObtenerPorID(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	query := `SELECT ` + reservaColumnas + ` FROM reservas_inventario WHERE id = $1`
	return r.escanearUna(r.q.QueryRow(ctx, query, id))
}

// ObtenerPorIDParaActualizar bloquea la fila de la reserva para revalidar su
// estado antes de transicionarla.
func (r *ReservaRepo) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	query := `SELECT ` + reservaColumnas + ` FROM reservas_inventario WHERE id = $1 FOR UPDATE`
	return r.escanearUna(r.q.QueryRow(ctx, query, id))
}

// Actualizar persiste estado, motivo y metadata de una reserva ya bloqueada.
func (r *ReservaRepo) Actualizar(ctx context.Context, reserva *entity.ReservaInventario) error {
	metadata, err := marshalMetadata(reserva.Metadata)
	if err != nil {
		return fmt.Errorf("actualizar reserva: %w", err)
	}
	query := `
		UPDATE reservas_inventario
		SET estado = $2, motivo = $3, metadata = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, reserva.ID, reserva.Estado, reserva.Motivo, metadata, reserva.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actualizar reserva: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar reserva %s: fila no encontrada", reserva.ID)
	}
	return nil
}

// ListarActivasPorInventario devuelve las reservas PENDIENTE de una existencia.
func (r *ReservaRepo) ListarActivasPorInventario(ctx context.Context, inventarioID string) ([]*entity.ReservaInventario, error) {
	query := `
		SELECT ` + reservaColumnas + `
		FROM reservas_inventario
		WHERE inventario_id = $1 AND estado = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, inventarioID, entity.ReservaPendiente)
	if err != nil {
		return nil, fmt.Errorf("listar reservas activas: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReservaInventario
	for rows.Next() {
		var res entity.ReservaInventario
		var metadata []byte
		if err := rows.Scan(&res.ID, &res.InventarioID, &res.Cantidad, &res.Estado,
			&res.OrdenID, &res.OrdenLineaID, &res.Motivo, &metadata,
			&res.UsuarioID, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reserva: %w", err)
		}
		if err := unmarshalMetadata(metadata, &res.Metadata); err != nil {
			return nil, fmt.Errorf("scan reserva metadata: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

func (r *ReservaRepo) escanearUna(row pgx.Row) (*entity.ReservaInventario, error) {
	var res entity.ReservaInventario
	var metadata []byte
	err := row.Scan(&res.ID, &res.InventarioID, &res.Cantidad, &res.Estado,
		&res.OrdenID, &res.OrdenLineaID, &res.Motivo, &metadata,
		&res.UsuarioID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener reserva: %w", err)
	}
	if err := unmarshalMetadata(metadata, &res.Metadata); err != nil {
		return nil, fmt.Errorf("obtener reserva metadata: %w", err)
	}
	return &res, nil
}

// marshalMetadata serializa la bolsa opaca a JSONB (NULL si está vacía).
func marshalMetadata(m map[string]string) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalMetadata(b []byte, dst *map[string]string) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
