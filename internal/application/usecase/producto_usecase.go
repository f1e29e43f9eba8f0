package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// ProductoUseCase CRUD mínimo del catálogo de productos y servicios.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// CrearProductoInput datos para crear un producto o servicio.
type CrearProductoInput struct {
	Codigo       string
	Nombre       string
	Descripcion  string
	Precio       decimal.Decimal
	EsServicio   bool
	UnidadMedida string
}

// Crear valida y persiste un producto nuevo.
func (uc *ProductoUseCase) Crear(ctx context.Context, input CrearProductoInput) (*entity.Producto, error) {
	if input.Codigo == "" || input.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if input.Precio.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	ahora := time.Now()
	p := &entity.Producto{
		ID:           uuid.New().String(),
		Codigo:       input.Codigo,
		Nombre:       input.Nombre,
		Descripcion:  input.Descripcion,
		Precio:       input.Precio,
		EsServicio:   input.EsServicio,
		UnidadMedida: input.UnidadMedida,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.repo.Crear(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ObtenerPorID devuelve un producto o ErrRegistroNoEncontrado.
func (uc *ProductoUseCase) ObtenerPorID(ctx context.Context, id string) (*entity.Producto, error) {
	p, err := uc.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	return p, nil
}

// Listar devuelve una página del catálogo.
func (uc *ProductoUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Producto, error) {
	return uc.repo.Listar(ctx, limit, offset)
}
