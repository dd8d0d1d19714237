package entity

import "time"

// InventoryRecord representa el stock actual de una tripleta
// (producto, bodega, marca). A lo sumo existe una fila por tripleta;
// se crea de forma perezosa en el primer Receive y nunca se borra,
// aunque Quantity llegue a 0.
//
// Quantity es entero (unidades completas, sin fracciones) y el invariante
// Quantity >= 0 lo garantizan las operaciones del ledger, no el storage.
type InventoryRecord struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	BrandID     int64
	Quantity    int64
	LastUpdated time.Time
}
