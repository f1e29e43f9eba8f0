package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/application/inventario"
)

// TransferenciaHandler maneja transferencias entre bodegas (protegido).
type TransferenciaHandler struct {
	transferencias *inventario.TransferenciaUseCase
	consultas      *inventario.ConsultaUseCase
}

// NewTransferenciaHandler construye el handler.
func NewTransferenciaHandler(transferencias *inventario.TransferenciaUseCase, consultas *inventario.ConsultaUseCase) *TransferenciaHandler {
	return &TransferenciaHandler{transferencias: transferencias, consultas: consultas}
}

// Crear debita el origen y deja la transferencia PENDIENTE_RECEPCION.
// POST /api/inventario/transferencias
func (h *TransferenciaHandler) Crear(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cantidad, err := dto.ParsearCantidad(in.Cantidad)
	if err != nil {
		return responderError(c, err)
	}
	resultado, err := h.transferencias.Crear(c.Context(), inventario.TransferenciaInput{
		ProductoID:         in.ProductoID,
		Cantidad:           cantidad,
		UsuarioID:          usuarioID,
		BodegaOrigenID:     in.BodegaOrigenID,
		UbicacionOrigenID:  in.UbicacionOrigenID,
		BodegaDestinoID:    in.BodegaDestinoID,
		UbicacionDestinoID: in.UbicacionDestinoID,
		Referencia:         in.Referencia,
		Notas:              in.Notas,
		Metadata:           in.Metadata,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transferencia":        dto.NuevaTransferenciaDTO(resultado.Transferencia),
		"movimiento_envio":     dto.NuevoMovimientoDTO(resultado.MovimientoEnvio),
		"movimiento_recepcion": dto.NuevoMovimientoDTO(resultado.MovimientoRecepcion),
		"inventario_origen":    dto.NuevoInventarioDTO(resultado.InventarioOrigen),
	})
}

// Confirmar acredita el destino y completa la transferencia.
// POST /api/inventario/transferencias/:id/confirmar
func (h *TransferenciaHandler) Confirmar(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferenciaAccionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	resultado, err := h.transferencias.Confirmar(c.Context(), c.Params("id"), usuarioID, in.Notas)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{
		"transferencia":      dto.NuevaTransferenciaDTO(resultado.Transferencia),
		"inventario_destino": dto.NuevoInventarioDTO(resultado.InventarioDestino),
	})
}

// Anular devuelve el stock al origen con un movimiento de reversa.
// POST /api/inventario/transferencias/:id/anular
func (h *TransferenciaHandler) Anular(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferenciaAccionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	resultado, err := h.transferencias.Anular(c.Context(), c.Params("id"), usuarioID, in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{
		"transferencia":      dto.NuevaTransferenciaDTO(resultado.Transferencia),
		"movimiento_reversa": dto.NuevoMovimientoDTO(resultado.MovimientoReversa),
		"inventario_origen":  dto.NuevoInventarioDTO(resultado.InventarioOrigen),
	})
}

// Obtener devuelve una transferencia por id.
// GET /api/inventario/transferencias/:id
func (h *TransferenciaHandler) Obtener(c *fiber.Ctx) error {
	tr, err := h.consultas.ObtenerTransferencia(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaTransferenciaDTO(tr))
}

// ListarPendientes devuelve transferencias sin recibir, más antiguas primero.
// GET /api/inventario/transferencias?estado=pendiente
func (h *TransferenciaHandler) ListarPendientes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.consultas.ListarTransferenciasPendientes(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.TransferenciaDTO, 0, len(list))
	for _, tr := range list {
		out = append(out, dto.NuevaTransferenciaDTO(tr))
	}
	return c.JSON(fiber.Map{"total": len(out), "transferencias": out})
}
