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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable
// con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Crear persiste un producto; código duplicado devuelve ErrDuplicado.
func (r *ProductoRepo) Crear(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (id, codigo, nombre, descripcion, precio, es_servicio, unidad_medida, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.Precio, p.EsServicio, p.UnidadMedida, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto codigo %s: %w", p.Codigo, domain.ErrDuplicado)
		}
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// ObtenerPorID obtiene un producto por id. Devuelve nil si no existe.
func (r *ProductoRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, descripcion, precio, es_servicio, unidad_medida, created_at, updated_at
		FROM productos WHERE id = $1`
	var p entity.Producto
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Precio, &p.EsServicio, &p.UnidadMedida, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	return &p, nil
}

// Listar devuelve una página del catálogo ordenada por código.
func (r *ProductoRepo) Listar(ctx context.Context, limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, descripcion, precio, es_servicio, unidad_medida, created_at, updated_at
		FROM productos ORDER BY codigo ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Precio,
			&p.EsServicio, &p.UnidadMedida, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
