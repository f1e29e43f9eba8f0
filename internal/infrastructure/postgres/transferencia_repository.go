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

var _ repository.TransferenciaRepository = (*TransferenciaRepo)(nil)

// TransferenciaRepo implementación de TransferenciaRepository sobre
// PostgreSQL (usable con pool o tx).
type TransferenciaRepo struct {
	q Querier
}

// NewTransferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferenciaRepository(q Querier) *TransferenciaRepo {
	return &TransferenciaRepo{q: q}
}

const transferenciaColumnas = `id, estado, movimiento_envio_id, movimiento_recepcion_id, referencia, notas, metadata, usuario_id, created_at, updated_at`

// Crear persiste una transferencia nueva.
func (r *TransferenciaRepo) Crear(ctx context.Context, tr *entity.MovimientoTransferencia) error {
	if tr.ID == "" {
		tr.ID = uuid.New().String()
	}
	metadata, err := marshalMetadata(tr.Metadata)
	if err != nil {
		return fmt.Errorf("crear transferencia: %w", err)
	}
	query := `
		INSERT INTO movimientos_transferencia (` + transferenciaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		tr.ID, tr.Estado, tr.MovimientoEnvioID, tr.MovimientoRecepcionID,
		tr.Referencia, tr.Notas, metadata, tr.UsuarioID, tr.CreatedAt, tr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("crear transferencia: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene una transferencia por id. Devuelve nil si no existe.
func (r *TransferenciaRepo) ObtenerPorID(ctx context.Context, id string) (*entity.MovimientoTransferencia, error) {
	query := `SELECT ` + transferenciaColumnas + ` FROM movimientos_transferencia WHERE id = $1`
	return r.escanearUna(r.q.QueryRow(ctx, query, id))
}

// ObtenerPorIDParaActualizar bloquea la fila para revalidar el estado antes
// de confirmar o anular.
func (r *TransferenciaRepo) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.MovimientoTransferencia, error) {
	query := `SELECT ` + transferenciaColumnas + ` FROM movimientos_transferencia WHERE id = $1 FOR UPDATE`
	return r.escanearUna(r.q.QueryRow(ctx, query, id))
}

// Actualizar persiste estado y notas de una transferencia ya bloqueada.
func (r *TransferenciaRepo) Actualizar(ctx context.Context, tr *entity.MovimientoTransferencia) error {
	metadata, err := marshalMetadata(tr.Metadata)
	if err != nil {
		return fmt.Errorf("actualizar transferencia: %w", err)
	}
	query := `
		UPDATE movimientos_transferencia
		SET estado = $2, notas = $3, metadata = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, tr.ID, tr.Estado, tr.Notas, metadata, tr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actualizar transferencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar transferencia %s: fila no encontrada", tr.ID)
	}
	return nil
}

// ListarPendientes devuelve transferencias en PENDIENTE_RECEPCION, las más
// antiguas primero (útil para la política externa de alertas por demora).
func (r *TransferenciaRepo) ListarPendientes(ctx context.Context, limit, offset int) ([]*entity.MovimientoTransferencia, error) {
	query := `
		SELECT ` + transferenciaColumnas + `
		FROM movimientos_transferencia
		WHERE estado = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, entity.TransferenciaPendienteRecepcion, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar transferencias pendientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoTransferencia
	for rows.Next() {
		var tr entity.MovimientoTransferencia
		var metadata []byte
		if err := rows.Scan(&tr.ID, &tr.Estado, &tr.MovimientoEnvioID, &tr.MovimientoRecepcionID,
			&tr.Referencia, &tr.Notas, &metadata, &tr.UsuarioID, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transferencia: %w", err)
		}
		if err := unmarshalMetadata(metadata, &tr.Metadata); err != nil {
			return nil, fmt.Errorf("scan transferencia metadata: %w", err)
		}
		list = append(list, &tr)
	}
	return list, rows.Err()
}

func (r *TransferenciaRepo) escanearUna(row pgx.Row) (*entity.MovimientoTransferencia, error) {
	var tr entity.MovimientoTransferencia
	var metadata []byte
	err := row.Scan(&tr.ID, &tr.Estado, &tr.MovimientoEnvioID, &tr.MovimientoRecepcionID,
		&tr.Referencia, &tr.Notas, &metadata, &tr.UsuarioID, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener transferencia: %w", err)
	}
	if err := unmarshalMetadata(metadata, &tr.Metadata); err != nil {
		return nil, fmt.Errorf("obtener transferencia metadata: %w", err)
	}
	return &tr, nil
}
