package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/taller-api/internal/application/inventario"
	"github.com/taller-pro/taller-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovimientoUC    *inventario.MovimientoUseCase
	ReservaUC       *inventario.ReservaUseCase
	TransferenciaUC *inventario.TransferenciaUseCase
	ConsultaUC      *inventario.ConsultaUseCase
	ProductoUC      *usecase.ProductoUseCase
	BodegaUC        *usecase.BodegaUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Get("/:id", productoHandler.Obtener)

	// Bodegas (protegido)
	bodegas := protected.Group("/bodegas")
	bodegaHandler := NewBodegaHandler(deps.BodegaUC)
	bodegas.Post("/", bodegaHandler.Crear)
	bodegas.Get("/", bodegaHandler.Listar)
	bodegas.Get("/:id", bodegaHandler.Obtener)

	// Inventario: existencias y movimientos (protegido)
	invGroup := protected.Group("/inventario")
	inventarioHandler := NewInventarioHandler(deps.MovimientoUC, deps.ConsultaUC)
	invGroup.Post("/movimientos", RequireRole("admin", "bodeguero"), inventarioHandler.AplicarMovimiento)
	invGroup.Get("/movimientos", inventarioHandler.ListarMovimientos)
	invGroup.Get("/existencias", inventarioHandler.ObtenerExistencia)
	invGroup.Get("/existencias/bajo-stock", inventarioHandler.ListarBajoStock)

	// Reservas (protegido)
	reservas := invGroup.Group("/reservas")
	reservaHandler := NewReservaHandler(deps.ReservaUC, deps.ConsultaUC)
	reservas.Post("/", reservaHandler.Reservar)
	reservas.Get("/:id", reservaHandler.Obtener)
	reservas.Post("/:id/confirmar", reservaHandler.Confirmar)
	reservas.Post("/:id/liberar", reservaHandler.Liberar)
	reservas.Post("/:id/cancelar", reservaHandler.Cancelar)

	// Transferencias (protegido)
	transferencias := invGroup.Group("/transferencias")
	transferenciaHandler := NewTransferenciaHandler(deps.TransferenciaUC, deps.ConsultaUC)
	transferencias.Post("/", RequireRole("admin", "bodeguero"), transferenciaHandler.Crear)
	transferencias.Get("/", transferenciaHandler.ListarPendientes)
	transferencias.Get("/:id", transferenciaHandler.Obtener)
	transferencias.Post("/:id/confirmar", RequireRole("admin", "bodeguero"), transferenciaHandler.Confirmar)
	transferencias.Post("/:id/anular", RequireRole("admin", "bodeguero"), transferenciaHandler.Anular)
}
