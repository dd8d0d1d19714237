package entity

import "time"

// Warehouse representa una bodega física donde se almacena inventario.
type Warehouse struct {
	ID          int64
	Name        string
	Address     string
	Phone       string
	IsActive    bool
	CreatedDate time.Time
}
