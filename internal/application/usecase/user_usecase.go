package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	domaccess "github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// UserUseCase administra los usuarios del sistema (solo Admin).
type UserUseCase struct {
	users    repository.UserRepository
	recorder audit.Recorder
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(users repository.UserRepository, recorder audit.Recorder, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, recorder: recorder, log: log}
}

// Create da de alta un usuario con la contraseña hasheada. El código de
// personal es único: el repositorio devuelve ErrDuplicateCode si ya existe.
func (uc *UserUseCase) Create(actor domaccess.Actor, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PersonnelCode: req.PersonnelCode,
		Mobile:        req.Mobile,
		Email:         req.Email,
		PasswordHash:  string(hash),
		RoleID:        req.RoleID,
		IsActive:      true,
		ExpiryDate:    req.ExpiryDate,
		CreatedDate:   time.Now().UTC(),
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Str("personnel_code", user.PersonnelCode).Str("role", user.Role().String()).Msg("Usuario creado")
	uc.recorder.Record(audit.Entry{
		TableName:   "Users",
		RecordID:    user.ID,
		Action:      entity.AuditActionCreate,
		NewValues:   sanitizeUser(user),
		Description: "Alta de usuario",
		UserID:      actor.UserID,
		IPAddress:   actor.IP,
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// GetByID devuelve un usuario por ID.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Update aplica cambios parciales, incluida la reasignación de rol y el
// reemplazo de contraseña.
func (uc *UserUseCase) Update(actor domaccess.Actor, id int64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	old := sanitizeUser(user)

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.ExpiryDate != nil {
		user.ExpiryDate = req.ExpiryDate
	}

	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		TableName: "Users",
		RecordID:  user.ID,
		Action:    entity.AuditActionUpdate,
		OldValues: old,
		NewValues: sanitizeUser(user),
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// List devuelve usuarios paginados.
func (uc *UserUseCase) List(page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.users.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Delete desactiva un usuario (soft delete). Sus operaciones históricas
// conservan la referencia.
func (uc *UserUseCase) Delete(actor domaccess.Actor, id int64) error {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if err := uc.users.SoftDelete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Msg("Usuario desactivado")
	uc.recorder.Record(audit.Entry{
		TableName: "Users",
		RecordID:  id,
		Action:    entity.AuditActionDelete,
		OldValues: sanitizeUser(user),
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})
	return nil
}

// sanitizeUser copia el usuario sin el hash de contraseña para auditoría.
func sanitizeUser(u *entity.User) entity.User {
	cp := *u
	cp.PasswordHash = ""
	return cp
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PersonnelCode: u.PersonnelCode,
		Mobile:        u.Mobile,
		Email:         u.Email,
		RoleID:        u.RoleID,
		RoleName:      u.Role().String(),
		IsActive:      u.IsActive,
		ExpiryDate:    u.ExpiryDate,
		CreatedDate:   u.CreatedDate,
		LastLogin:     u.LastLogin,
	}
}
