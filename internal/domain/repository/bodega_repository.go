package repository

import (
	"context"

	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// BodegaRepository define el puerto de persistencia de bodegas.
type BodegaRepository interface {
	Crear(ctx context.Context, b *entity.Bodega) error
	ObtenerPorID(ctx context.Context, id string) (*entity.Bodega, error)
	Listar(ctx context.Context, limit, offset int) ([]*entity.Bodega, error)
}
