package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	domaininv "github.com/taller-pro/taller-api/internal/domain/inventario"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// MovimientoUseCase aplica movimientos al ledger de inventario de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre la existencia
// y Commit/Rollback como unidad.
type MovimientoUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *MovimientoUseCase {
	return &MovimientoUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
	}
}

// MovimientoInput entrada para aplicar un movimiento. Cantidad es magnitud
// (> 0); el tipo codifica el signo. CostoUnitario es obligatorio en INGRESO.
type MovimientoInput struct {
	ProductoID    string
	BodegaID      string
	UbicacionID   *string
	Tipo          string
	Cantidad      decimal.Decimal
	CostoUnitario *decimal.Decimal
	OrigenTipo    string
	OrigenRef     string
	Notas         string
	UsuarioID     string
}

// MovimientoResultado devuelve el movimiento creado y el snapshot de la
// existencia después de aplicarlo (suficiente para que el caller registre la
// bitácora).
type MovimientoResultado struct {
	Movimiento *entity.MovimientoInventario
	Inventario *entity.InventarioProducto
}

// AplicarMovimiento valida la entrada, abre la transacción, bloquea la fila
// de la existencia (creándola en cero si no existe, bajo el mismo lock),
// aplica el delta según el tipo y persiste movimiento + existencia como
// unidad atómica.
//
// Los tipos TRANSFERENCIA_* no se aceptan por esta vía: solo los genera el
// motor de transferencias, que controla el par envío/recepción.
func (uc *MovimientoUseCase) AplicarMovimiento(ctx context.Context, input MovimientoInput) (*MovimientoResultado, error) {
	switch input.Tipo {
	case entity.MovimientoIngreso, entity.MovimientoSalida,
		entity.MovimientoAjustePositivo, entity.MovimientoAjusteNegativo:
	default:
		return nil, domain.ErrEntradaInvalida
	}
	if input.ProductoID == "" || input.BodegaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	if input.Tipo == entity.MovimientoIngreso {
		if input.CostoUnitario == nil {
			return nil, domain.ErrCostoRequerido
		}
		if input.CostoUnitario.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
	}

	if err := uc.validarCatalogo(ctx, input.ProductoID, input.BodegaID); err != nil {
		return nil, err
	}

	ahora := time.Now()
	var resultado *MovimientoResultado
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		_ repository.ReservaRepository,
		_ repository.TransferenciaRepository,
	) error {
		inv, err := invRepo.ObtenerParaActualizar(ctx, input.ProductoID, input.BodegaID, input.UbicacionID)
		if err != nil {
			return err
		}
		mov := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  inv.ID,
			ProductoID:    input.ProductoID,
			Tipo:          input.Tipo,
			Cantidad:      input.Cantidad,
			CostoUnitario: input.CostoUnitario,
			OrigenTipo:    input.OrigenTipo,
			OrigenRef:     input.OrigenRef,
			Notas:         input.Notas,
			UsuarioID:     input.UsuarioID,
			Fecha:         ahora,
			CreatedAt:     ahora,
		}
		if err := aplicarSobreExistencia(ctx, movRepo, invRepo, inv, mov, ahora); err != nil {
			return err
		}
		resultado = &MovimientoResultado{Movimiento: mov, Inventario: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// validarCatalogo verifica que producto y bodega existan antes de abrir la tx.
func (uc *MovimientoUseCase) validarCatalogo(ctx context.Context, productoID, bodegaID string) error {
	producto, err := uc.productoRepo.ObtenerPorID(ctx, productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrRegistroNoEncontrado
	}
	bodega, err := uc.bodegaRepo.ObtenerPorID(ctx, bodegaID)
	if err != nil {
		return err
	}
	if bodega == nil {
		return domain.ErrRegistroNoEncontrado
	}
	return nil
}

// aplicarSobreExistencia aplica el delta de un movimiento sobre una existencia
// ya bloqueada y persiste movimiento + existencia dentro de la tx del caller.
// Es el único camino que muta Disponible.
//
//   - Salidas (SALIDA, AJUSTE_NEGATIVO, TRANSFERENCIA_ENVIO): falla con
//     StockInsuficiente si Disponible quedaría negativo. El costo unitario del
//     movimiento se fija al promedio vigente si el caller no lo trae.
//   - Entradas (INGRESO, AJUSTE_POSITIVO, TRANSFERENCIA_RECEPCION): suma a
//     Disponible. Solo INGRESO recalcula el costo promedio: en una recepción
//     de transferencia el costo viaja con la unidad física sin cambiar.
func aplicarSobreExistencia(
	ctx context.Context,
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	inv *entity.InventarioProducto,
	mov *entity.MovimientoInventario,
	ahora time.Time,
) error {
	switch {
	case entity.EsSalida(mov.Tipo):
		if inv.Disponible.Sub(mov.Cantidad).IsNegative() {
			return &domain.StockInsuficienteError{
				ProductoID:  inv.ProductoID,
				BodegaID:    inv.BodegaID,
				UbicacionID: inv.UbicacionID,
				Solicitado:  mov.Cantidad,
				Disponible:  inv.Disponible,
			}
		}
		if mov.CostoUnitario == nil {
			costo := inv.CostoPromedio
			mov.CostoUnitario = &costo
		}
		inv.Disponible = inv.Disponible.Sub(mov.Cantidad)
	case entity.EsEntrada(mov.Tipo):
		if mov.Tipo == entity.MovimientoIngreso {
			if mov.CostoUnitario == nil {
				return domain.ErrCostoRequerido
			}
			inv.CostoPromedio = domaininv.CostoPromedio(inv.Disponible, inv.CostoPromedio, mov.Cantidad, *mov.CostoUnitario)
		}
		inv.Disponible = inv.Disponible.Add(mov.Cantidad)
	default:
		return domain.ErrEntradaInvalida
	}
	if mov.InventarioID == "" {
		mov.InventarioID = inv.ID
	}
	inv.UpdatedAt = ahora
	if err := movRepo.Crear(ctx, mov); err != nil {
		return err
	}
	return invRepo.Actualizar(ctx, inv)
}
