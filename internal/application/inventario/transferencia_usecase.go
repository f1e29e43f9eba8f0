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

// TransferenciaUseCase mueve stock entre dos existencias como un par
// débito/crédito en dos fases: el envío debita el origen al crear la
// transferencia; la recepción queda persistida en el ledger pero sin efecto
// sobre el destino hasta confirmar. Anular compensa el débito del origen.
//
// Crear bloquea solo la existencia de origen y Confirmar solo la de destino,
// nunca ambas en la misma transacción: dos transferencias cruzadas entre las
// mismas bodegas no pueden interbloquearse.
type TransferenciaUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
}

// NewTransferenciaUseCase construye el caso de uso.
func NewTransferenciaUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *TransferenciaUseCase {
	return &TransferenciaUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
	}
}

// TransferenciaInput entrada para crear una transferencia.
type TransferenciaInput struct {
	ProductoID         string
	Cantidad           decimal.Decimal
	UsuarioID          string
	BodegaOrigenID     string
	UbicacionOrigenID  *string
	BodegaDestinoID    string
	UbicacionDestinoID *string
	Referencia         string
	Notas              string
	Metadata           map[string]string
}

// TransferenciaResultado devuelve la transferencia, el par de movimientos y
// el snapshot del origen tras el débito.
type TransferenciaResultado struct {
	Transferencia       *entity.MovimientoTransferencia
	MovimientoEnvio     *entity.MovimientoInventario
	MovimientoRecepcion *entity.MovimientoInventario
	InventarioOrigen    *entity.InventarioProducto
}

// Crear debita el origen con un TRANSFERENCIA_ENVIO (falla con
// StockInsuficiente igual que una SALIDA) y persiste el TRANSFERENCIA_RECEPCION
// del destino como registro pendiente: existe en el ledger pero su efecto
// sobre Disponible del destino queda diferido hasta Confirmar. El costo
// unitario viaja con la unidad física: la recepción hereda el promedio del
// origen y nunca recalcula costos.
func (uc *TransferenciaUseCase) Crear(ctx context.Context, input TransferenciaInput) (*TransferenciaResultado, error) {
	if input.ProductoID == "" || input.BodegaOrigenID == "" || input.BodegaDestinoID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	if input.BodegaOrigenID == input.BodegaDestinoID && mismaUbicacion(input.UbicacionOrigenID, input.UbicacionDestinoID) {
		return nil, domain.ErrOrigenDestinoIguales
	}
	if err := uc.validarCatalogo(ctx, input); err != nil {
		return nil, err
	}

	trID := uuid.New().String()
	ahora := time.Now()
	var resultado *TransferenciaResultado
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		_ repository.ReservaRepository,
		transferRepo repository.TransferenciaRepository,
	) error {
		origen, err := invRepo.ObtenerParaActualizar(ctx, input.ProductoID, input.BodegaOrigenID, input.UbicacionOrigenID)
		if err != nil {
			return err
		}
		movEnvio := &entity.MovimientoInventario{
			ID:           uuid.New().String(),
			InventarioID: origen.ID,
			ProductoID:   input.ProductoID,
			Tipo:         entity.MovimientoTransferenciaEnvio,
			Cantidad:     input.Cantidad,
			OrigenTipo:   "transferencia",
			OrigenRef:    trID,
			Notas:        input.Notas,
			UsuarioID:    input.UsuarioID,
			Fecha:        ahora,
			CreatedAt:    ahora,
		}
		if err := aplicarSobreExistencia(ctx, movRepo, invRepo, origen, movEnvio, ahora); err != nil {
			return err
		}

		// El destino se materializa (en cero) sin bloquearlo: solo se necesita
		// su fila para anclar el movimiento de recepción pendiente.
		destino, err := invRepo.ObtenerOCrear(ctx, input.ProductoID, input.BodegaDestinoID, input.UbicacionDestinoID)
		if err != nil {
			return err
		}
		costo := *movEnvio.CostoUnitario
		movRecepcion := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  destino.ID,
			ProductoID:    input.ProductoID,
			Tipo:          entity.MovimientoTransferenciaRecepcion,
			Cantidad:      input.Cantidad,
			CostoUnitario: &costo,
			OrigenTipo:    "transferencia",
			OrigenRef:     trID,
			Notas:         input.Notas,
			UsuarioID:     input.UsuarioID,
			Fecha:         ahora,
			CreatedAt:     ahora,
		}
		if err := movRepo.Crear(ctx, movRecepcion); err != nil {
			return err
		}

		tr := &entity.MovimientoTransferencia{
			ID:                    trID,
			Estado:                entity.TransferenciaPendienteRecepcion,
			MovimientoEnvioID:     movEnvio.ID,
			MovimientoRecepcionID: movRecepcion.ID,
			Referencia:            input.Referencia,
			Notas:                 input.Notas,
			Metadata:              input.Metadata,
			UsuarioID:             input.UsuarioID,
			CreatedAt:             ahora,
			UpdatedAt:             ahora,
		}
		if err := transferRepo.Crear(ctx, tr); err != nil {
			return err
		}
		resultado = &TransferenciaResultado{
			Transferencia:       tr,
			MovimientoEnvio:     movEnvio,
			MovimientoRecepcion: movRecepcion,
			InventarioOrigen:    origen,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// ConfirmarResultado devuelve la transferencia y el destino tras el crédito.
type ConfirmarResultado struct {
	Transferencia     *entity.MovimientoTransferencia
	InventarioDestino *entity.InventarioProducto
}

// Confirmar acredita el destino con la cantidad del movimiento de recepción
// ya persistido (sin recalcular costos) y marca la transferencia COMPLETADA.
// Solo transferencias PENDIENTE_RECEPCION pueden confirmarse.
func (uc *TransferenciaUseCase) Confirmar(ctx context.Context, transferenciaID, usuarioID, notas string) (*ConfirmarResultado, error) {
	var resultado *ConfirmarResultado
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		_ repository.ReservaRepository,
		transferRepo repository.TransferenciaRepository,
	) error {
		tr, err := obtenerTransferenciaPendiente(ctx, transferRepo, transferenciaID)
		if err != nil {
			return err
		}
		movRecepcion, err := movRepo.ObtenerPorID(ctx, tr.MovimientoRecepcionID)
		if err != nil {
			return err
		}
		if movRecepcion == nil {
			return domain.ErrRegistroNoEncontrado
		}
		destino, err := invRepo.ObtenerPorIDParaActualizar(ctx, movRecepcion.InventarioID)
		if err != nil {
			return err
		}
		if destino == nil {
			return domain.ErrRegistroNoEncontrado
		}
		ahora := time.Now()

		// El movimiento de recepción ya está en el ledger desde Crear: aquí
		// solo se aplica su efecto diferido sobre el destino.
		destino.Disponible = destino.Disponible.Add(movRecepcion.Cantidad)
		destino.UpdatedAt = ahora
		if err := invRepo.Actualizar(ctx, destino); err != nil {
			return err
		}

		tr.Estado = entity.TransferenciaCompletada
		if notas != "" {
			tr.Notas = notas
		}
		tr.UpdatedAt = ahora
		if err := transferRepo.Actualizar(ctx, tr); err != nil {
			return err
		}
		resultado = &ConfirmarResultado{Transferencia: tr, InventarioDestino: destino}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// AnularResultado devuelve la transferencia, el movimiento compensatorio y el
// origen tras devolverle el stock.
type AnularResultado struct {
	Transferencia      *entity.MovimientoTransferencia
	MovimientoReversa  *entity.MovimientoInventario
	InventarioOrigen   *entity.InventarioProducto
}

// Anular devuelve al origen la cantidad debitada al crear la transferencia y
// la marca ANULADA. La compensación queda en el ledger como un movimiento
// TRANSFERENCIA_RECEPCION con EsReversa y origen "anulacion_transferencia":
// auditable y distinguible de un INGRESO fresco (no toca el costo promedio).
// Una transferencia COMPLETADA no puede anularse; revertirla exige una
// transferencia nueva en sentido contrario, responsabilidad del caller.
func (uc *TransferenciaUseCase) Anular(ctx context.Context, transferenciaID, usuarioID, motivo string) (*AnularResultado, error) {
	var resultado *AnularResultado
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		_ repository.ReservaRepository,
		transferRepo repository.TransferenciaRepository,
	) error {
		tr, err := obtenerTransferenciaPendiente(ctx, transferRepo, transferenciaID)
		if err != nil {
			return err
		}
		movEnvio, err := movRepo.ObtenerPorID(ctx, tr.MovimientoEnvioID)
		if err != nil {
			return err
		}
		if movEnvio == nil {
			return domain.ErrRegistroNoEncontrado
		}
		origen, err := invRepo.ObtenerPorIDParaActualizar(ctx, movEnvio.InventarioID)
		if err != nil {
			return err
		}
		if origen == nil {
			return domain.ErrRegistroNoEncontrado
		}
		ahora := time.Now()

		reversa := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			InventarioID:  origen.ID,
			ProductoID:    movEnvio.ProductoID,
			Tipo:          entity.MovimientoTransferenciaRecepcion,
			Cantidad:      movEnvio.Cantidad,
			CostoUnitario: movEnvio.CostoUnitario,
			EsReversa:     true,
			OrigenTipo:    "anulacion_transferencia",
			OrigenRef:     tr.ID,
			Notas:         motivo,
			UsuarioID:     usuarioID,
			Fecha:         ahora,
			CreatedAt:     ahora,
		}
		if err := aplicarSobreExistencia(ctx, movRepo, invRepo, origen, reversa, ahora); err != nil {
			return err
		}

		tr.Estado = entity.TransferenciaAnulada
		if motivo != "" {
			tr.Notas = motivo
		}
		tr.UpdatedAt = ahora
		if err := transferRepo.Actualizar(ctx, tr); err != nil {
			return err
		}
		resultado = &AnularResultado{Transferencia: tr, MovimientoReversa: reversa, InventarioOrigen: origen}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

func (uc *TransferenciaUseCase) validarCatalogo(ctx context.Context, input TransferenciaInput) error {
	producto, err := uc.productoRepo.ObtenerPorID(ctx, input.ProductoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrRegistroNoEncontrado
	}
	for _, bodegaID := range []string{input.BodegaOrigenID, input.BodegaDestinoID} {
		bodega, err := uc.bodegaRepo.ObtenerPorID(ctx, bodegaID)
		if err != nil {
			return err
		}
		if bodega == nil {
			return domain.ErrRegistroNoEncontrado
		}
	}
	return nil
}

func obtenerTransferenciaPendiente(
	ctx context.Context,
	transferRepo repository.TransferenciaRepository,
	transferenciaID string,
) (*entity.MovimientoTransferencia, error) {
	tr, err := transferRepo.ObtenerPorIDParaActualizar(ctx, transferenciaID)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrRegistroNoEncontrado
	}
	if tr.Estado != entity.TransferenciaPendienteRecepcion {
		return nil, &domain.TransferenciaNoPendienteError{TransferenciaID: tr.ID, Estado: tr.Estado}
	}
	return tr, nil
}

// mismaUbicacion compara dos ubicaciones opcionales (nil == nil).
func mismaUbicacion(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
