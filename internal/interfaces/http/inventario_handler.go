package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/application/inventario"
	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// InventarioHandler maneja movimientos del ledger y consultas de existencias
// (protegido).
type InventarioHandler struct {
	movimientos *inventario.MovimientoUseCase
	consultas   *inventario.ConsultaUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(movimientos *inventario.MovimientoUseCase, consultas *inventario.ConsultaUseCase) *InventarioHandler {
	return &InventarioHandler{movimientos: movimientos, consultas: consultas}
}

// AplicarMovimiento registra un movimiento (INGRESO, SALIDA, AJUSTE_*) sobre
// una existencia. POST /api/inventario/movimientos
func (h *InventarioHandler) AplicarMovimiento(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cantidad, err := dto.ParsearCantidad(in.Cantidad)
	if err != nil {
		return responderError(c, err)
	}
	costo, err := dto.ParsearCosto(in.CostoUnitario)
	if err != nil {
		return responderError(c, err)
	}
	resultado, err := h.movimientos.AplicarMovimiento(c.Context(), inventario.MovimientoInput{
		ProductoID:    in.ProductoID,
		BodegaID:      in.BodegaID,
		UbicacionID:   in.UbicacionID,
		Tipo:          in.Tipo,
		Cantidad:      cantidad,
		CostoUnitario: costo,
		OrigenTipo:    in.OrigenTipo,
		OrigenRef:     in.OrigenRef,
		Notas:         in.Notas,
		UsuarioID:     usuarioID,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"movimiento": dto.NuevoMovimientoDTO(resultado.Movimiento),
		"inventario": dto.NuevoInventarioDTO(resultado.Inventario),
	})
}

// ObtenerExistencia devuelve el snapshot de una existencia.
// GET /api/inventario/existencias?producto_id=&bodega_id=&ubicacion_id=
func (h *InventarioHandler) ObtenerExistencia(c *fiber.Ctx) error {
	productoID := c.Query("producto_id")
	bodegaID := c.Query("bodega_id")
	if productoID == "" || bodegaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id y bodega_id son requeridos"})
	}
	var ubicacionID *string
	if u := c.Query("ubicacion_id"); u != "" {
		ubicacionID = &u
	}
	inv, err := h.consultas.ObtenerExistencia(c.Context(), productoID, bodegaID, ubicacionID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevoInventarioDTO(inv))
}

// ListarBajoStock devuelve existencias en o por debajo de su mínimo.
// GET /api/inventario/existencias/bajo-stock?bodega_id=
func (h *InventarioHandler) ListarBajoStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.consultas.ListarBajoStock(c.Context(), c.Query("bodega_id"), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.InventarioDTO, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.NuevoInventarioDTO(inv))
	}
	return c.JSON(fiber.Map{"total": len(out), "existencias": out})
}

// ListarMovimientos devuelve el historial del ledger por producto o bodega.
// GET /api/inventario/movimientos?producto_id=|bodega_id=&desde=&hasta=
func (h *InventarioHandler) ListarMovimientos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde inválido (RFC3339)"})
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta inválido (RFC3339)"})
	}

	productoID := c.Query("producto_id")
	bodegaID := c.Query("bodega_id")
	var movs []*entity.MovimientoInventario
	switch {
	case productoID != "":
		movs, err = h.consultas.ListarMovimientosPorProducto(c.Context(), productoID, desde, hasta, page.Limit, page.Offset)
	case bodegaID != "":
		movs, err = h.consultas.ListarMovimientosPorBodega(c.Context(), bodegaID, desde, hasta, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id o bodega_id requerido"})
	}
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.MovimientoDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.NuevoMovimientoDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}

func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
