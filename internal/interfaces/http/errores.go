package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/dto"
	"github.com/taller-pro/taller-api/internal/domain"
)

// responderError traduce los errores tipados del dominio a HTTP. Los errores
// llevan su contexto (ids, solicitado vs disponible) en el mensaje, listo
// para mostrarse al usuario.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrRegistroNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCostoRequerido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "COSTO_REQUERIDO", Message: err.Error()})
	case errors.Is(err, domain.ErrOrigenDestinoIguales):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ORIGEN_DESTINO_IGUALES", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrReservaNoPendiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESERVA_NO_PENDIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrTransferenciaNoPendiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSFERENCIA_NO_PENDIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICADO", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
