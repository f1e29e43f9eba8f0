package inventario_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taller-pro/taller-api/internal/application/inventario"
	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Reservar — ciclo de vida del apartado blando
// ──────────────────────────────────────────────────────────────────────────────

func (e *entorno) reservar(ctx context.Context, cantidad string) (*inventario.ReservaResultado, error) {
	return e.reservas.Reservar(ctx, inventario.ReservaInput{
		ProductoID: e.productoID,
		BodegaID:   e.bodegaID,
		Cantidad:   d(cantidad),
		UsuarioID:  "tester",
		Motivo:     "orden de taller",
	})
}

// Caso 1: reservar aparta sin mover el stock físico. Disponible no cambia,
// Comprometido sube y no se escribe nada en el ledger.
func TestReservar_ApartaSinMoverStock(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "10", "10")

	res, err := e.reservar(ctx, "4")
	require.NoError(t, err)

	assert.Equal(t, entity.ReservaPendiente, res.Reserva.Estado)
	assert.True(t, res.Inventario.Disponible.Equal(d("10")),
		"reservar no toca Disponible")
	assert.True(t, res.Inventario.Comprometido.Equal(d("4")))
	assert.True(t, res.Inventario.Vendible().Equal(d("6")),
		"vendible = disponible - comprometido")

	movs, err := e.consultas.ListarMovimientosPorProducto(ctx, e.productoID, nil, nil, 100, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "una reserva no es un evento del ledger")
}

// Caso 2 (sobreventa): con 5 disponibles y 5 reservados, una reserva más de 1
// falla aunque Disponible siga en 5. Al liberar la primera, la segunda entra.
func TestReservar_VendibleAgotadoBloqueaYLiberarDesbloquea(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "5", "10")

	primera, err := e.reservar(ctx, "5")
	require.NoError(t, err)

	_, err = e.reservar(ctx, "1")
	require.Error(t, err, "no queda vendible aunque Disponible sea 5")
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Disponible.IsZero(),
		"el detalle reporta el vendible, no el físico")

	_, err = e.reservas.Liberar(ctx, primera.Reserva.ID, "tester", "orden repriorizada", nil)
	require.NoError(t, err)

	res, err := e.reservar(ctx, "1")
	require.NoError(t, err, "liberar devuelve el cupo vendible")
	assert.True(t, res.Inventario.Comprometido.Equal(d("1")))
}

// Caso 3: confirmar convierte el hold en salida real: bajan los dos
// contadores y queda una SALIDA en el ledger referenciando la reserva.
func TestConfirmarReserva_GeneraSalidaReal(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "10", "10")

	res, err := e.reservar(ctx, "4")
	require.NoError(t, err)

	conf, err := e.reservas.Confirmar(ctx, res.Reserva.ID, "tester", "orden facturada", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.ReservaConfirmada, conf.Reserva.Estado)
	assert.True(t, conf.Inventario.Disponible.Equal(d("6")),
		"confirmar sí descuenta el físico")
	assert.True(t, conf.Inventario.Comprometido.IsZero())

	movs, err := e.consultas.ListarMovimientosPorProducto(ctx, e.productoID, nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2, "ingreso de setup + salida de confirmación")
	salida := movs[1]
	assert.Equal(t, entity.MovimientoSalida, salida.Tipo)
	assert.Equal(t, "reserva", salida.OrigenTipo)
	assert.Equal(t, res.Reserva.ID, salida.OrigenRef,
		"sin orden asociada, la referencia es la reserva misma")
	assert.True(t, salida.Cantidad.Equal(d("4")))
}

// Caso 3b: si la reserva trae orden asociada, la salida referencia la orden.
func TestConfirmarReserva_ReferenciaLaOrden(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "10", "10")

	ordenID := "OT-2024-117"
	res, err := e.reservas.Reservar(ctx, inventario.ReservaInput{
		ProductoID: e.productoID,
		BodegaID:   e.bodegaID,
		Cantidad:   d("2"),
		UsuarioID:  "tester",
		OrdenID:    &ordenID,
	})
	require.NoError(t, err)

	_, err = e.reservas.Confirmar(ctx, res.Reserva.ID, "tester", "", nil)
	require.NoError(t, err)

	movs, err := e.consultas.ListarMovimientosPorProducto(ctx, e.productoID, nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, ordenID, movs[1].OrigenRef)
}

// Caso 4: una reserva ya resuelta no admite más transiciones; cada intento
// falla con ReservaNoPendiente y no toca los contadores.
func TestReserva_TransicionesDesdeEstadoFinalFallan(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "10", "10")

	res, err := e.reservar(ctx, "4")
	require.NoError(t, err)
	_, err = e.reservas.Confirmar(ctx, res.Reserva.ID, "tester", "", nil)
	require.NoError(t, err)

	// Doble confirmación
	_, err = e.reservas.Confirmar(ctx, res.Reserva.ID, "tester", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReservaNoPendiente)
	var estadoErr *domain.ReservaNoPendienteError
	require.ErrorAs(t, err, &estadoErr)
	assert.Equal(t, entity.ReservaConfirmada, estadoErr.Estado)

	// Liberar y cancelar sobre confirmada también fallan
	_, err = e.reservas.Liberar(ctx, res.Reserva.ID, "tester", "", nil)
	assert.ErrorIs(t, err, domain.ErrReservaNoPendiente)
	_, err = e.reservas.Cancelar(ctx, res.Reserva.ID, "tester", "", nil)
	assert.ErrorIs(t, err, domain.ErrReservaNoPendiente)

	inv := e.existencia(ctx)
	assert.True(t, inv.Disponible.Equal(d("6")),
		"los intentos fallidos no deben volver a descontar")
	assert.True(t, inv.Comprometido.IsZero())
}

// Caso 5: cancelar equivale a liberar en los contadores; cambia la razón de
// negocio, no el efecto.
func TestCancelarReserva_DevuelveElCupo(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "10", "10")

	res, err := e.reservar(ctx, "7")
	require.NoError(t, err)

	canc, err := e.reservas.Cancelar(ctx, res.Reserva.ID, "tester", "orden cancelada por el cliente", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.ReservaCancelada, canc.Reserva.Estado)
	assert.Equal(t, "orden cancelada por el cliente", canc.Reserva.Motivo)
	assert.True(t, canc.Inventario.Disponible.Equal(d("10")))
	assert.True(t, canc.Inventario.Comprometido.IsZero())

	movs, err := e.consultas.ListarMovimientosPorProducto(ctx, e.productoID, nil, nil, 100, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "cancelar no registra movimiento: nada salió nunca")
}

// Caso 6: validaciones de entrada y reserva inexistente.
func TestReservar_Validaciones(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()

	_, err := e.reservar(ctx, "0")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = e.reservas.Reservar(ctx, inventario.ReservaInput{
		ProductoID: "no-existe", BodegaID: e.bodegaID, Cantidad: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrRegistroNoEncontrado)

	_, err = e.reservas.Confirmar(ctx, "reserva-fantasma", "tester", "", nil)
	assert.ErrorIs(t, err, domain.ErrRegistroNoEncontrado)
}

// Caso 7: el invariante Comprometido == Σ reservas PENDIENTE se sostiene a
// través de un ciclo de reservas y transiciones mezcladas.
func TestReserva_InvarianteComprometido(t *testing.T) {
	e := nuevoEntorno()
	ctx := context.Background()
	e.ingresar(ctx, "100", "10")

	a, err := e.reservar(ctx, "10")
	require.NoError(t, err)
	b, err := e.reservar(ctx, "20")
	require.NoError(t, err)
	c, err := e.reservar(ctx, "30")
	require.NoError(t, err)

	_, err = e.reservas.Liberar(ctx, a.Reserva.ID, "tester", "", nil)
	require.NoError(t, err)
	_, err = e.reservas.Confirmar(ctx, b.Reserva.ID, "tester", "", nil)
	require.NoError(t, err)

	inv := e.existencia(ctx)
	assert.True(t, inv.Comprometido.Equal(d("30")),
		"solo la reserva c sigue pendiente")
	assert.True(t, inv.Disponible.Equal(d("80")),
		"solo la confirmación descontó físico")

	activas, err := e.consultas.ListarReservasActivas(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, c.Reserva.ID, activas[0].ID)
}
