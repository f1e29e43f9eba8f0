package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// ReservaUseCase implementa el apartado blando de stock contra órdenes en
// vuelo. Reservar incrementa Comprometido sin tocar Disponible ni el ledger;
// confirmar convierte el hold en una SALIDA real; liberar y cancelar
// devuelven el comprometido a vendible.
//
// Invariante sostenido: Comprometido == Σ(cantidad de reservas PENDIENTE) de
// la existencia. Toda transición revalida el estado bajo bloqueo de fila
// (reserva y luego existencia, siempre en ese orden) para impedir carreras de
// doble confirmación.
type ReservaUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
}

// NewReservaUseCase construye el caso de uso.
func NewReservaUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *ReservaUseCase {
	return &ReservaUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
	}
}

// ReservaInput entrada para crear una reserva.
type ReservaInput struct {
	ProductoID   string
	BodegaID     string
	UbicacionID  *string
	Cantidad     decimal.Decimal
	UsuarioID    string
	OrdenID      *string
	OrdenLineaID *string
	Motivo       string
	Metadata     map[string]string
}

// ReservaResultado devuelve la reserva junto con la existencia refrescada.
type ReservaResultado struct {
	Reserva    *entity.ReservaInventario
	Inventario *entity.InventarioProducto
}

// Reservar bloquea la existencia y falla con StockInsuficiente si la porción
// no comprometida (Disponible - Comprometido) no alcanza a cubrir la
// cantidad. Si alcanza, incrementa Comprometido y crea la reserva PENDIENTE.
// No se registra ningún movimiento: una reserva es un hold, no un evento del
// ledger.
func (uc *ReservaUseCase) Reservar(ctx context.Context, input ReservaInput) (*ReservaResultado, error) {
	if input.ProductoID == "" || input.BodegaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	producto, err := uc.productoRepo.ObtenerPorID(ctx, input.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	bodega, err := uc.bodegaRepo.ObtenerPorID(ctx, input.BodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}

	ahora := time.Now()
	var resultado *ReservaResultado
	err = uc.txRunner.Run(ctx, func(
		_ repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		reservaRepo repository.ReservaRepository,
		_ repository.TransferenciaRepository,
	) error {
		inv, err := invRepo.ObtenerParaActualizar(ctx, input.ProductoID, input.BodegaID, input.UbicacionID)
		if err != nil {
			return err
		}
		if inv.Vendible().LessThan(input.Cantidad) {
			return &domain.StockInsuficienteError{
				ProductoID:  inv.ProductoID,
				BodegaID:    inv.BodegaID,
				UbicacionID: inv.UbicacionID,
				Solicitado:  input.Cantidad,
				Disponible:  inv.Vendible(),
			}
		}
		inv.Comprometido = inv.Comprometido.Add(input.Cantidad)
		inv.UpdatedAt = ahora
		if err := invRepo.Actualizar(ctx, inv); err != nil {
			return err
		}
		reserva := &entity.ReservaInventario{
			ID:           uuid.New().String(),
			InventarioID: inv.ID,
			Cantidad:     input.Cantidad,
			Estado:       entity.ReservaPendiente,
			OrdenID:      input.OrdenID,
			OrdenLineaID: input.OrdenLineaID,
			Motivo:       input.Motivo,
			Metadata:     input.Metadata,
			UsuarioID:    input.UsuarioID,
			CreatedAt:    ahora,
			UpdatedAt:    ahora,
		}
		if err := reservaRepo.Crear(ctx, reserva); err != nil {
			return err
		}
		resultado = &ReservaResultado{Reserva: reserva, Inventario: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Confirmar convierte el hold en consumo real: baja Comprometido y aplica una
// SALIDA por la cantidad reservada (ahí sí se decrementa Disponible y queda
// rastro en el ledger). Una reserva confirmada no admite más transiciones.
func (uc *ReservaUseCase) Confirmar(ctx context.Context, reservaID, usuarioID, motivo string, metadata map[string]string) (*ReservaResultado, error) {
	var resultado *ReservaResultado
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		reservaRepo repository.ReservaRepository,
		_ repository.TransferenciaRepository,
	) error {
		reserva, inv, err := obtenerReservaPendiente(ctx, reservaRepo, invRepo, reservaID)
		if err != nil {
			return err
		}
		ahora := time.Now()

		inv.Comprometido = inv.Comprometido.Sub(reserva.Cantidad)
		mov := &entity.MovimientoInventario{
			ID:           uuid.New().String(),
			InventarioID: inv.ID,
			ProductoID:   inv.ProductoID,
			Tipo:         entity.MovimientoSalida,
			Cantidad:     reserva.Cantidad,
			OrigenTipo:   "reserva",
			OrigenRef:    reserva.ID,
			Notas:        motivo,
			UsuarioID:    usuarioID,
			Fecha:        ahora,
			CreatedAt:    ahora,
		}
		if reserva.OrdenID != nil {
			mov.OrigenRef = *reserva.OrdenID
		}
		if err := aplicarSobreExistencia(ctx, movRepo, invRepo, inv, mov, ahora); err != nil {
			return err
		}

		actualizarReserva(reserva, entity.ReservaConfirmada, motivo, metadata, ahora)
		if err := reservaRepo.Actualizar(ctx, reserva); err != nil {
			return err
		}
		resultado = &ReservaResultado{Reserva: reserva, Inventario: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// Liberar devuelve el comprometido a vendible sin registrar movimiento (nada
// salió nunca de Disponible) y deja la reserva LIBERADA.
func (uc *ReservaUseCase) Liberar(ctx context.Context, reservaID, usuarioID, motivo string, metadata map[string]string) (*ReservaResultado, error) {
	return uc.soltar(ctx, reservaID, entity.ReservaLiberada, motivo, metadata)
}

// Cancelar tiene el mismo efecto que Liberar pero con otra razón de negocio
// (orden cancelada vs. stock ya no necesario); deja la reserva CANCELADA.
func (uc *ReservaUseCase) Cancelar(ctx context.Context, reservaID, usuarioID, motivo string, metadata map[string]string) (*ReservaResultado, error) {
	return uc.soltar(ctx, reservaID, entity.ReservaCancelada, motivo, metadata)
}

func (uc *ReservaUseCase) soltar(ctx context.Context, reservaID, estadoFinal, motivo string, metadata map[string]string) (*ReservaResultado, error) {
	var resultado *ReservaResultado
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		reservaRepo repository.ReservaRepository,
		_ repository.TransferenciaRepository,
	) error {
		reserva, inv, err := obtenerReservaPendiente(ctx, reservaRepo, invRepo, reservaID)
		if err != nil {
			return err
		}
		ahora := time.Now()

		inv.Comprometido = inv.Comprometido.Sub(reserva.Cantidad)
		inv.UpdatedAt = ahora
		if err := invRepo.Actualizar(ctx, inv); err != nil {
			return err
		}
		actualizarReserva(reserva, estadoFinal, motivo, metadata, ahora)
		if err := reservaRepo.Actualizar(ctx, reserva); err != nil {
			return err
		}
		resultado = &ReservaResultado{Reserva: reserva, Inventario: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// obtenerReservaPendiente bloquea la reserva, revalida que siga PENDIENTE y
// bloquea su existencia, en ese orden fijo.
func obtenerReservaPendiente(
	ctx context.Context,
	reservaRepo repository.ReservaRepository,
	invRepo repository.InventarioRepository,
	reservaID string,
) (*entity.ReservaInventario, *entity.InventarioProducto, error) {
	reserva, err := reservaRepo.ObtenerPorIDParaActualizar(ctx, reservaID)
	if err != nil {
		return nil, nil, err
	}
	if reserva == nil {
		return nil, nil, domain.ErrRegistroNoEncontrado
	}
	if reserva.Estado != entity.ReservaPendiente {
		return nil, nil, &domain.ReservaNoPendienteError{ReservaID: reserva.ID, Estado: reserva.Estado}
	}
	inv, err := invRepo.ObtenerPorIDParaActualizar(ctx, reserva.InventarioID)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrRegistroNoEncontrado
	}
	return reserva, inv, nil
}

func actualizarReserva(reserva *entity.ReservaInventario, estado, motivo string, metadata map[string]string, ahora time.Time) {
	reserva.Estado = estado
	if motivo != "" {
		reserva.Motivo = motivo
	}
	if len(metadata) > 0 {
		if reserva.Metadata == nil {
			reserva.Metadata = make(map[string]string, len(metadata))
		}
		for k, v := range metadata {
			reserva.Metadata[k] = v
		}
	}
	reserva.UpdatedAt = ahora
}
