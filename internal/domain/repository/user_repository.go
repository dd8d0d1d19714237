package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByPersonnelCode(code string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateLastLogin(id int64) error
	List(limit, offset int) ([]*entity.User, error)
	SoftDelete(id int64) error
}
