package inventario

import "github.com/shopspring/decimal"

// CostoPromedio recalcula el costo promedio ponderado tras un ingreso
// (servicio de dominio puro, sin efectos).
// NuevoCosto = ((Disponible * CostoActual) + (Cantidad * CostoUnitario)) / (Disponible + Cantidad)
//
// Si Disponible es cero (o negativo por datos históricos corruptos) el nuevo
// costo es directamente el costo unitario del ingreso: evita la división por
// cero y descarta un promedio obsoleto después de un quiebre de stock.
func CostoPromedio(disponible, costoActual, cantidad, costoUnitario decimal.Decimal) decimal.Decimal {
	if disponible.LessThanOrEqual(decimal.Zero) {
		return costoUnitario
	}
	total := disponible.Add(cantidad)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := disponible.Mul(costoActual).Add(cantidad.Mul(costoUnitario))
	return num.Div(total)
}
