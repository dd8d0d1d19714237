package entity

import "time"

// CostCenter representa un centro de costo al que se imputan las salidas de stock.
type CostCenter struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	CreatedDate time.Time
}
