package inventario_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/application/inventario"
	"github.com/taller-pro/taller-api/internal/domain/entity"
	"github.com/taller-pro/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Un único almacén respaldado por mapas implementa los puertos de persistencia.
// El TxRunner fake toma un snapshot antes de correr fn y lo restaura si fn
// falla, imitando el Rollback real. Los bloqueos de fila no se simulan: los
// tests son secuenciales.
// ──────────────────────────────────────────────────────────────────────────────

type almacenFake struct {
	inventarios    map[string]*entity.InventarioProducto
	movimientos    map[string]*entity.MovimientoInventario
	ordenMovs      []string
	reservas       map[string]*entity.ReservaInventario
	transferencias map[string]*entity.MovimientoTransferencia
	productos      map[string]*entity.Producto
	bodegas        map[string]*entity.Bodega
}

func nuevoAlmacenFake() *almacenFake {
	return &almacenFake{
		inventarios:    make(map[string]*entity.InventarioProducto),
		movimientos:    make(map[string]*entity.MovimientoInventario),
		reservas:       make(map[string]*entity.ReservaInventario),
		transferencias: make(map[string]*entity.MovimientoTransferencia),
		productos:      make(map[string]*entity.Producto),
		bodegas:        make(map[string]*entity.Bodega),
	}
}

func (a *almacenFake) snapshot() *almacenFake {
	s := nuevoAlmacenFake()
	for k, v := range a.inventarios {
		c := *v
		s.inventarios[k] = &c
	}
	for k, v := range a.movimientos {
		c := *v
		s.movimientos[k] = &c
	}
	s.ordenMovs = append([]string(nil), a.ordenMovs...)
	for k, v := range a.reservas {
		c := *v
		s.reservas[k] = &c
	}
	for k, v := range a.transferencias {
		c := *v
		s.transferencias[k] = &c
	}
	for k, v := range a.productos {
		s.productos[k] = v
	}
	for k, v := range a.bodegas {
		s.bodegas[k] = v
	}
	return s
}

func (a *almacenFake) restaurar(s *almacenFake) {
	a.inventarios = s.inventarios
	a.movimientos = s.movimientos
	a.ordenMovs = s.ordenMovs
	a.reservas = s.reservas
	a.transferencias = s.transferencias
	a.productos = s.productos
	a.bodegas = s.bodegas
}

func claveInventario(productoID, bodegaID string, ubicacionID *string) string {
	u := ""
	if ubicacionID != nil {
		u = *ubicacionID
	}
	return fmt.Sprintf("%s|%s|%s", productoID, bodegaID, u)
}

// ── InventarioRepository ──

type invRepoFake struct{ st *almacenFake }

func (r *invRepoFake) buscar(productoID, bodegaID string, ubicacionID *string) *entity.InventarioProducto {
	clave := claveInventario(productoID, bodegaID, ubicacionID)
	for _, inv := range r.st.inventarios {
		if claveInventario(inv.ProductoID, inv.BodegaID, inv.UbicacionID) == clave {
			return inv
		}
	}
	return nil
}

func (r *invRepoFake) Obtener(_ context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	inv := r.buscar(productoID, bodegaID, ubicacionID)
	if inv == nil {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *invRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.InventarioProducto, error) {
	inv, ok := r.st.inventarios[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *invRepoFake) materializar(productoID, bodegaID string, ubicacionID *string) *entity.InventarioProducto {
	if inv := r.buscar(productoID, bodegaID, ubicacionID); inv != nil {
		return inv
	}
	inv := &entity.InventarioProducto{
		ID:            uuid.New().String(),
		ProductoID:    productoID,
		BodegaID:      bodegaID,
		UbicacionID:   ubicacionID,
		Disponible:    decimal.Zero,
		Comprometido:  decimal.Zero,
		CostoPromedio: decimal.Zero,
		UpdatedAt:     time.Now(),
	}
	r.st.inventarios[inv.ID] = inv
	return inv
}

func (r *invRepoFake) ObtenerParaActualizar(_ context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	c := *r.materializar(productoID, bodegaID, ubicacionID)
	return &c, nil
}

func (r *invRepoFake) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.InventarioProducto, error) {
	return r.ObtenerPorID(ctx, id)
}

func (r *invRepoFake) ObtenerOCrear(_ context.Context, productoID, bodegaID string, ubicacionID *string) (*entity.InventarioProducto, error) {
	c := *r.materializar(productoID, bodegaID, ubicacionID)
	return &c, nil
}

func (r *invRepoFake) Actualizar(_ context.Context, inv *entity.InventarioProducto) error {
	c := *inv
	r.st.inventarios[inv.ID] = &c
	return nil
}

func (r *invRepoFake) ListarBajoStock(_ context.Context, bodegaID string, limit, offset int) ([]*entity.InventarioProducto, error) {
	var out []*entity.InventarioProducto
	for _, inv := range r.st.inventarios {
		if bodegaID != "" && inv.BodegaID != bodegaID {
			continue
		}
		if inv.BajoStock() {
			c := *inv
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── MovimientoRepository ──

type movRepoFake struct{ st *almacenFake }

func (r *movRepoFake) Crear(_ context.Context, mov *entity.MovimientoInventario) error {
	c := *mov
	r.st.movimientos[mov.ID] = &c
	r.st.ordenMovs = append(r.st.ordenMovs, mov.ID)
	return nil
}

func (r *movRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.MovimientoInventario, error) {
	mov, ok := r.st.movimientos[id]
	if !ok {
		return nil, nil
	}
	c := *mov
	return &c, nil
}

func (r *movRepoFake) ListarPorProducto(_ context.Context, productoID string, _, _ *time.Time, _, _ int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, id := range r.st.ordenMovs {
		mov := r.st.movimientos[id]
		if mov.ProductoID == productoID {
			c := *mov
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *movRepoFake) ListarPorBodega(_ context.Context, bodegaID string, _, _ *time.Time, _, _ int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, id := range r.st.ordenMovs {
		mov := r.st.movimientos[id]
		inv, ok := r.st.inventarios[mov.InventarioID]
		if ok && inv.BodegaID == bodegaID {
			c := *mov
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── ReservaRepository ──

type reservaRepoFake struct{ st *almacenFake }

func (r *reservaRepoFake) Crear(_ context.Context, reserva *entity.ReservaInventario) error {
	c := *reserva
	r.st.reservas[reserva.ID] = &c
	return nil
}

func (r *reservaRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.ReservaInventario, error) {
	reserva, ok := r.st.reservas[id]
	if !ok {
		return nil, nil
	}
	c := *reserva
	return &c, nil
}

func (r *reservaRepoFake) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.ReservaInventario, error) {
	return r.ObtenerPorID(ctx, id)
}

func (r *reservaRepoFake) Actualizar(_ context.Context, reserva *entity.ReservaInventario) error {
	c := *reserva
	r.st.reservas[reserva.ID] = &c
	return nil
}

func (r *reservaRepoFake) ListarActivasPorInventario(_ context.Context, inventarioID string) ([]*entity.ReservaInventario, error) {
	var out []*entity.ReservaInventario
	for _, reserva := range r.st.reservas {
		if reserva.InventarioID == inventarioID && reserva.Estado == entity.ReservaPendiente {
			c := *reserva
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── TransferenciaRepository ──

type transferRepoFake struct{ st *almacenFake }

func (r *transferRepoFake) Crear(_ context.Context, tr *entity.MovimientoTransferencia) error {
	c := *tr
	r.st.transferencias[tr.ID] = &c
	return nil
}

func (r *transferRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.MovimientoTransferencia, error) {
	tr, ok := r.st.transferencias[id]
	if !ok {
		return nil, nil
	}
	c := *tr
	return &c, nil
}

func (r *transferRepoFake) ObtenerPorIDParaActualizar(ctx context.Context, id string) (*entity.MovimientoTransferencia, error) {
	return r.ObtenerPorID(ctx, id)
}

func (r *transferRepoFake) Actualizar(_ context.Context, tr *entity.MovimientoTransferencia) error {
	c := *tr
	r.st.transferencias[tr.ID] = &c
	return nil
}

func (r *transferRepoFake) ListarPendientes(_ context.Context, _, _ int) ([]*entity.MovimientoTransferencia, error) {
	var out []*entity.MovimientoTransferencia
	for _, tr := range r.st.transferencias {
		if tr.Estado == entity.TransferenciaPendienteRecepcion {
			c := *tr
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Catálogo ──

type productoRepoFake struct{ st *almacenFake }

func (r *productoRepoFake) Crear(_ context.Context, p *entity.Producto) error {
	r.st.productos[p.ID] = p
	return nil
}

func (r *productoRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.Producto, error) {
	return r.st.productos[id], nil
}

func (r *productoRepoFake) Listar(_ context.Context, _, _ int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.st.productos {
		out = append(out, p)
	}
	return out, nil
}

type bodegaRepoFake struct{ st *almacenFake }

func (r *bodegaRepoFake) Crear(_ context.Context, b *entity.Bodega) error {
	r.st.bodegas[b.ID] = b
	return nil
}

func (r *bodegaRepoFake) ObtenerPorID(_ context.Context, id string) (*entity.Bodega, error) {
	return r.st.bodegas[id], nil
}

func (r *bodegaRepoFake) Listar(_ context.Context, _, _ int) ([]*entity.Bodega, error) {
	var out []*entity.Bodega
	for _, b := range r.st.bodegas {
		out = append(out, b)
	}
	return out, nil
}

// ── TxRunner ──

type txRunnerFake struct{ st *almacenFake }

var _ inventario.TxRunner = (*txRunnerFake)(nil)

func (tx *txRunnerFake) Run(_ context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	reservaRepo repository.ReservaRepository,
	transferRepo repository.TransferenciaRepository,
) error) error {
	snap := tx.st.snapshot()
	err := fn(
		&movRepoFake{st: tx.st},
		&invRepoFake{st: tx.st},
		&reservaRepoFake{st: tx.st},
		&transferRepoFake{st: tx.st},
	)
	if err != nil {
		tx.st.restaurar(snap)
		return err
	}
	return nil
}

// ── Entorno de test ──

// entorno agrupa el almacén fake y los casos de uso ya cableados, con un
// producto y dos bodegas de catálogo listos para usar.
type entorno struct {
	st          *almacenFake
	movimientos *inventario.MovimientoUseCase
	reservas    *inventario.ReservaUseCase
	transfers   *inventario.TransferenciaUseCase
	consultas   *inventario.ConsultaUseCase

	productoID      string
	bodegaID        string
	bodegaDestinoID string
}

func nuevoEntorno() *entorno {
	st := nuevoAlmacenFake()
	tx := &txRunnerFake{st: st}
	productoRepo := &productoRepoFake{st: st}
	bodegaRepo := &bodegaRepoFake{st: st}

	e := &entorno{
		st:          st,
		movimientos: inventario.NewMovimientoUseCase(tx, productoRepo, bodegaRepo),
		reservas:    inventario.NewReservaUseCase(tx, productoRepo, bodegaRepo),
		transfers:   inventario.NewTransferenciaUseCase(tx, productoRepo, bodegaRepo),
		consultas: inventario.NewConsultaUseCase(
			&invRepoFake{st: st},
			&movRepoFake{st: st},
			&reservaRepoFake{st: st},
			&transferRepoFake{st: st},
		),
		productoID:      uuid.New().String(),
		bodegaID:        uuid.New().String(),
		bodegaDestinoID: uuid.New().String(),
	}
	ahora := time.Now()
	st.productos[e.productoID] = &entity.Producto{
		ID:        e.productoID,
		Codigo:    "FIL-001",
		Nombre:    "Filtro de aceite",
		Precio:    decimal.NewFromInt(30),
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	st.bodegas[e.bodegaID] = &entity.Bodega{ID: e.bodegaID, Nombre: "Bodega principal", CreatedAt: ahora, UpdatedAt: ahora}
	st.bodegas[e.bodegaDestinoID] = &entity.Bodega{ID: e.bodegaDestinoID, Nombre: "Sucursal norte", CreatedAt: ahora, UpdatedAt: ahora}
	return e
}

// ingresar aplica un INGRESO y devuelve el snapshot de la existencia.
func (e *entorno) ingresar(ctx context.Context, cantidad, costo string) *entity.InventarioProducto {
	c := decimal.RequireFromString(costo)
	res, err := e.movimientos.AplicarMovimiento(ctx, inventario.MovimientoInput{
		ProductoID:    e.productoID,
		BodegaID:      e.bodegaID,
		Tipo:          entity.MovimientoIngreso,
		Cantidad:      decimal.RequireFromString(cantidad),
		CostoUnitario: &c,
		UsuarioID:     "tester",
	})
	if err != nil {
		panic("ingreso de setup no debe fallar: " + err.Error())
	}
	return res.Inventario
}

// existencia lee la existencia actual de la bodega principal.
func (e *entorno) existencia(ctx context.Context) *entity.InventarioProducto {
	inv, err := e.consultas.ObtenerExistencia(ctx, e.productoID, e.bodegaID, nil)
	if err != nil {
		panic("consulta de existencia no debe fallar: " + err.Error())
	}
	return inv
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
