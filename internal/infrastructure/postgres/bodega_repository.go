package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

// BodegaRepo implementación de BodegaRepository sobre PostgreSQL (usable con
// pool o tx).
type BodegaRepo struct {
	q Querier
}

// NewBodegaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// Crear persiste una bodega; nombre duplicado devuelve ErrDuplicado.
func (r *BodegaRepo) Crear(ctx context.Context, b *entity.Bodega) error {
	query := `
		INSERT INTO bodegas (id, nombre, direccion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, b.ID, b.Nombre, b.Direccion, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bodega %s: %w", b.Nombre, domain.ErrDuplicado)
		}
		return fmt.Errorf("crear bodega: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene una bodega por id. Devuelve nil si no existe.
func (r *BodegaRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Bodega, error) {
	query := `SELECT id, nombre, direccion, created_at, updated_at FROM bodegas WHERE id = $1`
	var b entity.Bodega
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Nombre, &b.Direccion, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener bodega: %w", err)
	}
	return &b, nil
}

// Listar devuelve una página de bodegas ordenada por nombre.
func (r *BodegaRepo) Listar(ctx context.Context, limit, offset int) ([]*entity.Bodega, error) {
	query := `SELECT id, nombre, direccion, created_at, updated_at FROM bodegas ORDER BY nombre ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bodega
	for rows.Next() {
		var b entity.Bodega
		if err := rows.Scan(&b.ID, &b.Nombre, &b.Direccion, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
