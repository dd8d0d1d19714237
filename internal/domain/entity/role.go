package entity

// Role es el rol de un usuario, con orden total de privilegio:
// Admin > SeniorUser > SeniorStorekeeper > Storekeeper > Viewer.
// Los IDs numéricos (1..5) se conservan por compatibilidad con los tokens existentes.
type Role int

const (
	RoleAdmin             Role = 1
	RoleSeniorUser        Role = 2
	RoleSeniorStorekeeper Role = 3
	RoleStorekeeper       Role = 4
	RoleViewer            Role = 5
)

// RoleFromID convierte un ID numérico en Role. IDs desconocidos degradan a Viewer.
func RoleFromID(id int) Role {
	r := Role(id)
	if r < RoleAdmin || r > RoleViewer {
		return RoleViewer
	}
	return r
}

// String devuelve el nombre canónico del rol.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleSeniorUser:
		return "SeniorUser"
	case RoleSeniorStorekeeper:
		return "SeniorStorekeeper"
	case RoleStorekeeper:
		return "Storekeeper"
	default:
		return "Viewer"
	}
}

// AtLeast indica si el rol tiene privilegio igual o superior a other
// (ID menor = más privilegio).
func (r Role) AtLeast(other Role) bool {
	return r <= other
}

// HasImplicitAccess indica si el rol tiene acceso implícito a todas las bodegas
// sin consultar WarehouseAccess (Admin, SeniorUser y SeniorStorekeeper).
func (r Role) HasImplicitAccess() bool {
	return r == RoleAdmin || r == RoleSeniorUser || r == RoleSeniorStorekeeper
}
