// Package auth implementa el inicio de sesión por código de personal y el
// cambio de contraseña.
package auth

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// UseCase maneja autenticación y credenciales.
type UseCase struct {
	users    repository.UserRepository
	jwtCfg   config.JWTConfig
	recorder audit.Recorder
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, jwtCfg config.JWTConfig, recorder audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg, recorder: recorder, log: log}
}

// Login valida las credenciales contra el hash almacenado y emite un JWT.
// Un usuario inactivo o vencido no puede iniciar sesión aunque la contraseña
// sea correcta. La misma respuesta cubre código desconocido y contraseña
// errónea para no revelar cuál falló; una falla de almacenamiento se propaga
// tal cual, no como credenciales inválidas.
func (uc *UseCase) Login(req dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByPersonnelCode(req.PersonnelCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("buscar usuario por código: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("personnel_code", req.PersonnelCode).Str("ip", ip).Msg("Intento de login con contraseña incorrecta")
		return nil, fmt.Errorf("%w", domain.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	if user.Expired(time.Now()) {
		return nil, fmt.Errorf("%w", domain.ErrUserExpired)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RoleID, user.FullName(), uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.jwtCfg.Expiration) * time.Minute)

	if err := uc.users.UpdateLastLogin(user.ID); err != nil {
		uc.log.Error().Err(err).Int64("user_id", user.ID).Msg("No se pudo actualizar el último login")
	}
	uc.recorder.Record(audit.Entry{
		TableName: "Users",
		RecordID:  user.ID,
		Action:    entity.AuditActionLogin,
		UserID:    user.ID,
		IPAddress: ip,
	})
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role().String()).Msg("Inicio de sesión exitoso")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

// ChangePassword verifica la contraseña actual del usuario autenticado y
// guarda el hash de la nueva.
func (uc *UseCase) ChangePassword(userID int64, req dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w", domain.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := uc.users.Update(user); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", userID).Msg("Contraseña actualizada")
	return nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PersonnelCode: user.PersonnelCode,
		Mobile:        user.Mobile,
		Email:         user.Email,
		RoleID:        user.RoleID,
		RoleName:      user.Role().String(),
		IsActive:      user.IsActive,
		ExpiryDate:    user.ExpiryDate,
		CreatedDate:   user.CreatedDate,
		LastLogin:     user.LastLogin,
	}
}
