package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	id, first_name, last_name, personnel_code, mobile, email,
	password_hash, role_id, is_active, expiry_date, created_date, last_login`

// Create inserta el usuario y asigna su ID. El código de personal es único:
// una violación se traduce a ErrDuplicateCode.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users
			(first_name, last_name, personnel_code, mobile, email,
			 password_hash, role_id, is_active, expiry_date, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.FirstName, user.LastName, user.PersonnelCode, user.Mobile, user.Email,
		user.PasswordHash, user.RoleID, user.IsActive, user.ExpiryDate, user.CreatedDate,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPersonnelCode obtiene un usuario por su código de personal (login).
func (r *UserRepo) GetByPersonnelCode(code string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE personnel_code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// Update persiste los campos editables del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, mobile = $4, email = $5,
			password_hash = $6, role_id = $7, is_active = $8, expiry_date = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.FirstName, user.LastName, user.Mobile, user.Email,
		user.PasswordHash, user.RoleID, user.IsActive, user.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin registra el instante del último inicio de sesión.
func (r *UserRepo) UpdateLastLogin(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// List devuelve usuarios paginados, ordenados por apellido.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SoftDelete marca el usuario como inactivo sin borrar la fila.
func (r *UserRepo) SoftDelete(id int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE users SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.PersonnelCode, &u.Mobile, &u.Email,
		&u.PasswordHash, &u.RoleID, &u.IsActive, &u.ExpiryDate, &u.CreatedDate, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
