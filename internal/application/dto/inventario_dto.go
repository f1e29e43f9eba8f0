package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taller-pro/taller-api/internal/domain"
	"github.com/taller-pro/taller-api/internal/domain/entity"
)

// Las cantidades y costos viajan como strings decimales en la frontera HTTP
// (nunca como float JSON: evita deriva de punto flotante) y se parsean a
// decimal exacto al entrar.

// ParsearCantidad convierte una cantidad decimal en string a decimal exacto,
// exigiendo que sea estrictamente positiva.
func ParsearCantidad(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cantidad %q: %w", s, domain.ErrEntradaInvalida)
	}
	if !d.GreaterThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("cantidad %q debe ser mayor a cero: %w", s, domain.ErrEntradaInvalida)
	}
	return d, nil
}

// ParsearCosto convierte un costo opcional en string; nil pasa derecho.
func ParsearCosto(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("costo %q: %w", *s, domain.ErrEntradaInvalida)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("costo %q no puede ser negativo: %w", *s, domain.ErrEntradaInvalida)
	}
	return &d, nil
}

// MovimientoRequest body para POST /api/inventario/movimientos.
type MovimientoRequest struct {
	ProductoID    string  `json:"producto_id"`
	BodegaID      string  `json:"bodega_id"`
	UbicacionID   *string `json:"ubicacion_id,omitempty"`
	Tipo          string  `json:"tipo"`
	Cantidad      string  `json:"cantidad"`
	CostoUnitario *string `json:"costo_unitario,omitempty"`
	OrigenTipo    string  `json:"origen_tipo,omitempty"`
	OrigenRef     string  `json:"origen_ref,omitempty"`
	Notas         string  `json:"notas,omitempty"`
}

// ReservaRequest body para POST /api/inventario/reservas.
type ReservaRequest struct {
	ProductoID   string            `json:"producto_id"`
	BodegaID     string            `json:"bodega_id"`
	UbicacionID  *string           `json:"ubicacion_id,omitempty"`
	Cantidad     string            `json:"cantidad"`
	OrdenID      *string           `json:"orden_id,omitempty"`
	OrdenLineaID *string           `json:"orden_linea_id,omitempty"`
	Motivo       string            `json:"motivo,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ReservaAccionRequest body para confirmar/liberar/cancelar una reserva.
type ReservaAccionRequest struct {
	Motivo   string            `json:"motivo,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TransferenciaRequest body para POST /api/inventario/transferencias.
type TransferenciaRequest struct {
	ProductoID         string            `json:"producto_id"`
	Cantidad           string            `json:"cantidad"`
	BodegaOrigenID     string            `json:"bodega_origen_id"`
	UbicacionOrigenID  *string           `json:"ubicacion_origen_id,omitempty"`
	BodegaDestinoID    string            `json:"bodega_destino_id"`
	UbicacionDestinoID *string           `json:"ubicacion_destino_id,omitempty"`
	Referencia         string            `json:"referencia,omitempty"`
	Notas              string            `json:"notas,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// TransferenciaAccionRequest body para confirmar/anular una transferencia.
type TransferenciaAccionRequest struct {
	Notas  string `json:"notas,omitempty"`
	Motivo string `json:"motivo,omitempty"`
}

// InventarioDTO snapshot de una existencia en respuestas.
type InventarioDTO struct {
	ID            string  `json:"id,omitempty"`
	ProductoID    string  `json:"producto_id"`
	BodegaID      string  `json:"bodega_id"`
	UbicacionID   *string `json:"ubicacion_id,omitempty"`
	Disponible    string  `json:"disponible"`
	Comprometido  string  `json:"comprometido"`
	Vendible      string  `json:"vendible"`
	StockMinimo   string  `json:"stock_minimo"`
	StockMaximo   string  `json:"stock_maximo"`
	CostoPromedio string  `json:"costo_promedio"`
}

// NuevoInventarioDTO convierte la entidad a DTO.
func NuevoInventarioDTO(inv *entity.InventarioProducto) InventarioDTO {
	return InventarioDTO{
		ID:            inv.ID,
		ProductoID:    inv.ProductoID,
		BodegaID:      inv.BodegaID,
		UbicacionID:   inv.UbicacionID,
		Disponible:    inv.Disponible.String(),
		Comprometido:  inv.Comprometido.String(),
		Vendible:      inv.Vendible().String(),
		StockMinimo:   inv.StockMinimo.String(),
		StockMaximo:   inv.StockMaximo.String(),
		CostoPromedio: inv.CostoPromedio.String(),
	}
}

// MovimientoDTO entrada del ledger en respuestas.
type MovimientoDTO struct {
	ID            string  `json:"id"`
	InventarioID  string  `json:"inventario_id"`
	ProductoID    string  `json:"producto_id"`
	Tipo          string  `json:"tipo"`
	Cantidad      string  `json:"cantidad"`
	CostoUnitario *string `json:"costo_unitario,omitempty"`
	OrigenTipo    string  `json:"origen_tipo,omitempty"`
	OrigenRef     string  `json:"origen_ref,omitempty"`
	EsReversa     bool    `json:"es_reversa,omitempty"`
	Notas         string  `json:"notas,omitempty"`
	UsuarioID     string  `json:"usuario_id,omitempty"`
	Fecha         string  `json:"fecha"`
}

// NuevoMovimientoDTO convierte la entidad a DTO.
func NuevoMovimientoDTO(m *entity.MovimientoInventario) MovimientoDTO {
	dto := MovimientoDTO{
		ID:           m.ID,
		InventarioID: m.InventarioID,
		ProductoID:   m.ProductoID,
		Tipo:         m.Tipo,
		Cantidad:     m.Cantidad.String(),
		OrigenTipo:   m.OrigenTipo,
		OrigenRef:    m.OrigenRef,
		EsReversa:    m.EsReversa,
		Notas:        m.Notas,
		UsuarioID:    m.UsuarioID,
		Fecha:        m.Fecha.Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.CostoUnitario != nil {
		s := m.CostoUnitario.String()
		dto.CostoUnitario = &s
	}
	return dto
}

// ReservaDTO reserva en respuestas.
type ReservaDTO struct {
	ID           string            `json:"id"`
	InventarioID string            `json:"inventario_id"`
	Cantidad     string            `json:"cantidad"`
	Estado       string            `json:"estado"`
	OrdenID      *string           `json:"orden_id,omitempty"`
	OrdenLineaID *string           `json:"orden_linea_id,omitempty"`
	Motivo       string            `json:"motivo,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NuevaReservaDTO convierte la entidad a DTO.
func NuevaReservaDTO(r *entity.ReservaInventario) ReservaDTO {
	return ReservaDTO{
		ID:           r.ID,
		InventarioID: r.InventarioID,
		Cantidad:     r.Cantidad.String(),
		Estado:       r.Estado,
		OrdenID:      r.OrdenID,
		OrdenLineaID: r.OrdenLineaID,
		Motivo:       r.Motivo,
		Metadata:     r.Metadata,
	}
}

// TransferenciaDTO transferencia en respuestas.
type TransferenciaDTO struct {
	ID                    string            `json:"id"`
	Estado                string            `json:"estado"`
	MovimientoEnvioID     string            `json:"movimiento_envio_id"`
	MovimientoRecepcionID string            `json:"movimiento_recepcion_id"`
	Referencia            string            `json:"referencia,omitempty"`
	Notas                 string            `json:"notas,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

// NuevaTransferenciaDTO convierte la entidad a DTO.
func NuevaTransferenciaDTO(t *entity.MovimientoTransferencia) TransferenciaDTO {
	return TransferenciaDTO{
		ID:                    t.ID,
		Estado:                t.Estado,
		MovimientoEnvioID:     t.MovimientoEnvioID,
		MovimientoRecepcionID: t.MovimientoRecepcionID,
		Referencia:            t.Referencia,
		Notas:                 t.Notas,
		Metadata:              t.Metadata,
	}
}
