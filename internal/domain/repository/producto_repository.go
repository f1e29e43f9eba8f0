package repository

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia del catálogo de
// productos y servicios.
type ProductoRepository interface {
	Crear(ctx context.Context, p *entity.Producto) error
	ObtenerPorID(ctx context.Context, id string) (*entity.Producto, error)
	Listar(ctx context.Context, limit, offset int) ([]*entity.Producto, error)
}
