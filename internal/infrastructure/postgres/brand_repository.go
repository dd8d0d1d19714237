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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación de BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de marcas.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// GetActiveByID obtiene una marca activa por ID.
func (r *BrandRepo) GetActiveByID(id int64) (*entity.Brand, error) {
	query := `SELECT id, name, description, is_active FROM brands WHERE id = $1 AND is_active = true`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).Scan(&b.ID, &b.Name, &b.Description, &b.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// ListActive lista las marcas activas.
func (r *BrandRepo) ListActive() ([]*entity.Brand, error) {
	query := `SELECT id, name, description, is_active FROM brands WHERE is_active = true ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.IsActive); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// LinkProduct vincula un producto con una marca. El vínculo duplicado se ignora.
func (r *BrandRepo) LinkProduct(productID, brandID int64) error {
	query := `
		INSERT INTO product_brands (product_id, brand_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, brand_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, productID, brandID)
	if err != nil {
		return fmt.Errorf("link product brand: %w", err)
	}
	return nil
}

// ListByProduct lista las marcas vinculadas a un producto.
func (r *BrandRepo) ListByProduct(productID int64) ([]*entity.Brand, error) {
	query := `
		SELECT b.id, b.name, b.description, b.is_active
		FROM brands b
		JOIN product_brands pb ON pb.brand_id = b.id
		WHERE pb.product_id = $1 AND b.is_active = true
		ORDER BY b.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list brands by product: %w", err)
	}
	defer rows.Close()

	var out []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.IsActive); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
