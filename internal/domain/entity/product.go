package entity

import "time"

// Product representa un producto del almacén.
// TotalQuantity es un agregado derivado: la suma de InventoryRecord.Quantity
// en todas las bodegas y marcas; se recalcula por re-suma tras cada mutación
// del ledger, nunca se muta de forma independiente.
type Product struct {
	ID            int64
	Name          string
	Name2         string // nombre alternativo
	MainCode      string // código principal, único
	Code2         string
	Code3         string
	TotalQuantity int64 // rollup derivado
	ReorderPoint  int64
	SafetyStock   int64
	IsActive      bool
	CreatedDate   time.Time
	ModifiedDate  *time.Time
}
