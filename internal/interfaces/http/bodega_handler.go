package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/application/usecase"
)

// BodegaHandler maneja el catálogo de bodegas (protegido).
type BodegaHandler struct {
	bodegas *usecase.BodegaUseCase
}

// NewBodegaHandler construye el handler.
func NewBodegaHandler(bodegas *usecase.BodegaUseCase) *BodegaHandler {
	return &BodegaHandler{bodegas: bodegas}
}

// Crear registra una bodega.
// POST /api/bodegas
func (h *BodegaHandler) Crear(c *fiber.Ctx) error {
	var in dto.BodegaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.bodegas.Crear(c.Context(), in.Nombre, in.Direccion)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NuevaBodegaDTO(b))
}

// Obtener devuelve una bodega por id.
// GET /api/bodegas/:id
func (h *BodegaHandler) Obtener(c *fiber.Ctx) error {
	b, err := h.bodegas.ObtenerPorID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaBodegaDTO(b))
}

// Listar devuelve una página de bodegas.
// GET /api/bodegas
func (h *BodegaHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.bodegas.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.BodegaDTO, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NuevaBodegaDTO(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "bodegas": out})
}
