package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/application/usecase"
	"github.com/taller-pro/taller-api/internal/domain"
)

// ProductoHandler maneja el catálogo de productos (protegido).
type ProductoHandler struct {
	productos *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(productos *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{productos: productos}
}

// Crear registra un producto o servicio.
// POST /api/productos
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	precio := decimal.Zero
	if in.Precio != "" {
		var err error
		precio, err = decimal.NewFromString(in.Precio)
		if err != nil {
			return responderError(c, domain.ErrEntradaInvalida)
		}
	}
	p, err := h.productos.Crear(c.Context(), usecase.CrearProductoInput{
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		Precio:       precio,
		EsServicio:   in.EsServicio,
		UnidadMedida: in.UnidadMedida,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NuevoProductoDTO(p))
}

// Obtener devuelve un producto por id.
// GET /api/productos/:id
func (h *ProductoHandler) Obtener(c *fiber.Ctx) error {
	p, err := h.productos.ObtenerPorID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevoProductoDTO(p))
}

// Listar devuelve una página del catálogo.
// GET /api/productos
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.productos.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.ProductoDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NuevoProductoDTO(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "productos": out})
}
