package entity

import "time"

// Tipos de operación del ledger de stock.
const (
	OperationISSUE   = "ISSUE"   // salida de bodega (requiere centro de costo)
	OperationRECEIVE = "RECEIVE" // entrada a bodega
	OperationADJUST  = "ADJUST"  // ajuste administrativo: fija la cantidad resultante
)

// ValidOperationType indica si s es un tipo de operación conocido.
func ValidOperationType(s string) bool {
	return s == OperationISSUE || s == OperationRECEIVE || s == OperationADJUST
}

// StockOperation es una entrada del historial de movimientos de stock.
// Append-only: nunca se actualiza ni se borra.
//
// Para ISSUE y RECEIVE, Quantity es la magnitud positiva del movimiento
// (el signo lo implica OperationType). Para ADJUST, Quantity es la cantidad
// resultante fijada (set-point), de modo que reproducir el historial desde
// cero (RECEIVE suma, ISSUE resta, ADJUST fija) reconstruye el stock actual.
type StockOperation struct {
	ID            int64
	ProductID     int64
	WarehouseID   int64
	BrandID       int64
	Quantity      int64
	OperationType string
	CostCenterID  *int64 // obligatorio en ISSUE, ausente en RECEIVE/ADJUST
	Reason        string
	OperationDate time.Time
	CreatedBy     int64
	CreatedDate   time.Time
}
