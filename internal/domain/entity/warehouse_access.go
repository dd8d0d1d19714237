package entity

// WarehouseAccess define los permisos de un usuario Storekeeper sobre una bodega.
// A lo sumo una fila por (UserID, WarehouseID); el alta rechaza duplicados.
// CanView y CanEdit son independientes (no anidados): una fila puede tener
// CanEdit=true con CanView=false aunque el sistema no construya esa combinación.
type WarehouseAccess struct {
	ID          int64
	UserID      int64
	WarehouseID int64
	CanView     bool
	CanEdit     bool
}
