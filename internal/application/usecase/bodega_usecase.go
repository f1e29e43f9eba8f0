package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// BodegaUseCase CRUD mínimo de bodegas.
type BodegaUseCase struct {
	repo repository.BodegaRepository
}

// NewBodegaUseCase construye el caso de uso.
func NewBodegaUseCase(repo repository.BodegaRepository) *BodegaUseCase {
	return &BodegaUseCase{repo: repo}
}

// Crear valida y persiste una bodega nueva.
func (uc *BodegaUseCase) Crear(ctx context.Context, nombre, direccion string) (*entity.Bodega, error) {
	if nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	ahora := time.Now()
	b := &entity.Bodega{
		ID:        uuid.New().String(),
		Nombre:    nombre,
		Direccion: direccion,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	if err := uc.repo.Crear(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ObtenerPorID devuelve una bodega o ErrRegistroNoEncontrado.
func (uc *BodegaUseCase) ObtenerPorID(ctx context.Context, id string) (*entity.Bodega, error) {
	b, err := uc.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	return b, nil
}

// Listar devuelve una página de bodegas.
func (uc *BodegaUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Bodega, error) {
	return uc.repo.Listar(ctx, limit, offset)
}
