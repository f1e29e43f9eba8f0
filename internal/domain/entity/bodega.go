package entity

import "time"

// Bodega representa un almacén o sucursal del taller donde se guarda
// inventario. Las ubicaciones internas (estantería, zona) son opcionales y se
// referencian por id desde InventarioProducto.
type Bodega struct {
	ID        string
	Nombre    string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
