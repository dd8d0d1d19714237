package entity

import "time"

// User representa un usuario del sistema.
// Los usuarios nunca se borran físicamente: IsActive=false los desactiva
// y ExpiryDate permite cuentas con vencimiento.
type User struct {
	ID            int64
	FirstName     string
	LastName      string
	PersonnelCode string // código de personal, único; usado como login
	Mobile        string
	Email         string
	PasswordHash  string // bcrypt, nunca plano después de persistir
	RoleID        int
	IsActive      bool
	ExpiryDate    *time.Time
	CreatedDate   time.Time
	LastLogin     *time.Time
}

// FullName devuelve nombre y apellido concatenados.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role devuelve el rol tipado del usuario.
func (u *User) Role() Role {
	return RoleFromID(u.RoleID)
}

// Expired indica si la cuenta venció (ExpiryDate en el pasado).
func (u *User) Expired(now time.Time) bool {
	return u.ExpiryDate != nil && u.ExpiryDate.Before(now)
}
