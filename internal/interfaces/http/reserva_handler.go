package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/application/inventario"
)

// ReservaHandler maneja el ciclo de vida de reservas (protegido).
type ReservaHandler struct {
	reservas  *inventario.ReservaUseCase
	consultas *inventario.ConsultaUseCase
}

// NewReservaHandler construye el handler.
func NewReservaHandler(reservas *inventario.ReservaUseCase, consultas *inventario.ConsultaUseCase) *ReservaHandler {
	return &ReservaHandler{reservas: reservas, consultas: consultas}
}

// Reservar crea una reserva PENDIENTE. POST /api/inventario/reservas
func (h *ReservaHandler) Reservar(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReservaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cantidad, err := dto.ParsearCantidad(in.Cantidad)
	if err != nil {
		return responderError(c, err)
	}
	resultado, err := h.reservas.Reservar(c.Context(), inventario.ReservaInput{
		ProductoID:   in.ProductoID,
		BodegaID:     in.BodegaID,
		UbicacionID:  in.UbicacionID,
		Cantidad:     cantidad,
		UsuarioID:    usuarioID,
		OrdenID:      in.OrdenID,
		OrdenLineaID: in.OrdenLineaID,
		Motivo:       in.Motivo,
		Metadata:     in.Metadata,
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reserva":    dto.NuevaReservaDTO(resultado.Reserva),
		"inventario": dto.NuevoInventarioDTO(resultado.Inventario),
	})
}

// Confirmar convierte el hold en una SALIDA real.
// POST /api/inventario/reservas/:id/confirmar
func (h *ReservaHandler) Confirmar(c *fiber.Ctx) error {
	return h.transicionar(c, h.reservas.Confirmar)
}

// Liberar devuelve el comprometido a vendible.
// POST /api/inventario/reservas/:id/liberar
func (h *ReservaHandler) Liberar(c *fiber.Ctx) error {
	return h.transicionar(c, h.reservas.Liberar)
}

// Cancelar igual que liberar, con razón de negocio distinta.
// POST /api/inventario/reservas/:id/cancelar
func (h *ReservaHandler) Cancelar(c *fiber.Ctx) error {
	return h.transicionar(c, h.reservas.Cancelar)
}

// Obtener devuelve una reserva por id. GET /api/inventario/reservas/:id
func (h *ReservaHandler) Obtener(c *fiber.Ctx) error {
	reserva, err := h.consultas.ObtenerReserva(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NuevaReservaDTO(reserva))
}

func (h *ReservaHandler) transicionar(
	c *fiber.Ctx,
	fn func(ctx context.Context, reservaID, usuarioID, motivo string, metadata map[string]string) (*inventario.ReservaResultado, error),
) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReservaAccionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	resultado, err := fn(c.Context(), c.Params("id"), usuarioID, in.Motivo, in.Metadata)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{
		"reserva":    dto.NuevaReservaDTO(resultado.Reserva),
		"inventario": dto.NuevoInventarioDTO(resultado.Inventario),
	})
}
