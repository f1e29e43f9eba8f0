package dto

import "github.com/taller-pro/taller-api/internal/domain/entity"

// ProductoRequest body para POST /api/productos.
type ProductoRequest struct {
	Codigo       string `json:"codigo"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion,omitempty"`
	Precio       string `json:"precio"`
	EsServicio   bool   `json:"es_servicio,omitempty"`
	UnidadMedida string `json:"unidad_medida,omitempty"`
}

// ProductoDTO producto en respuestas.
type ProductoDTO struct {
	ID           string `json:"id"`
	Codigo       string `json:"codigo"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion,omitempty"`
	Precio       string `json:"precio"`
	EsServicio   bool   `json:"es_servicio"`
	UnidadMedida string `json:"unidad_medida,omitempty"`
}

// NuevoProductoDTO convierte la entidad a DTO.
func NuevoProductoDTO(p *entity.Producto) ProductoDTO {
	return ProductoDTO{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Precio:       p.Precio.String(),
		EsServicio:   p.EsServicio,
		UnidadMedida: p.UnidadMedida,
	}
}

// BodegaRequest body para POST /api/bodegas.
type BodegaRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
}

// BodegaDTO bodega en respuestas.
type BodegaDTO struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
}

// NuevaBodegaDTO convierte la entidad a DTO.
func NuevaBodegaDTO(b *entity.Bodega) BodegaDTO {
	return BodegaDTO{ID: b.ID, Nombre: b.Nombre, Direccion: b.Direccion}
}
