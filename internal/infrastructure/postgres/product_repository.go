package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, name, name2, main_code, code2, code3, total_quantity,
	reorder_point, safety_stock, is_active, created_date, modified_date`

// Create inserta el producto y asigna su ID. El código principal es único:
// una violación se traduce a ErrDuplicateCode.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products
			(name, name2, main_code, code2, code3, reorder_point, safety_stock, is_active, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Name2, product.MainCode, product.Code2, product.Code3,
		product.ReorderPoint, product.SafetyStock, product.IsActive, product.CreatedDate,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, activo o no.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByID obtiene un producto activo por ID.
func (r *ProductRepo) GetActiveByID(id int64) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1 AND is_active = true`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste los campos editables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, name2 = $3, code2 = $4, code3 = $5,
			reorder_point = $6, safety_stock = $7, is_active = $8, modified_date = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Name2, product.Code2, product.Code3,
		product.ReorderPoint, product.SafetyStock, product.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos activos. search filtra por nombre o código sin
// distinguir mayúsculas ni acentos: se busca tanto el término original como
// su forma sin diacríticos.
func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE is_active = true`
	args := []any{}
	if search != "" {
		pattern := "%" + search + "%"
		folded := "%" + foldAccents(search) + "%"
		args = append(args, pattern, folded)
		query += `
		AND (name ILIKE $1 OR name ILIKE $2 OR name2 ILIKE $1 OR name2 ILIKE $2
		     OR main_code ILIKE $1 OR code2 ILIKE $1 OR code3 ILIKE $1)`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(`
		ORDER BY name
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SoftDelete marca el producto como inactivo sin borrar la fila.
func (r *ProductRepo) SoftDelete(id int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, modified_date = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecomputeTotalQuantity re-suma el inventario del producto y persiste el
// rollup. Se invoca dentro de la transacción de cada mutación del ledger:
// el agregado nunca se incrementa a mano.
func (r *ProductRepo) RecomputeTotalQuantity(productID int64) error {
	query := `
		UPDATE products SET total_quantity = (
			SELECT COALESCE(SUM(quantity), 0)
			FROM inventory_records
			WHERE product_id = $1
		)
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID)
	if err != nil {
		return fmt.Errorf("recompute total quantity: %w", err)
	}
	return nil
}

// ListBelowReorderPoint devuelve productos activos con rollup en o bajo su punto de reorden.
func (r *ProductRepo) ListBelowReorderPoint() ([]*entity.Product, error) {
	query := `SELECT` + productColumns + `
	FROM products
	WHERE is_active = true AND total_quantity <= reorder_point
	ORDER BY total_quantity - safety_stock, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Name2, &p.MainCode, &p.Code2, &p.Code3,
		&p.TotalQuantity, &p.ReorderPoint, &p.SafetyStock, &p.IsActive,
		&p.CreatedDate, &p.ModifiedDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// foldAccents elimina los diacríticos del término de búsqueda
// ("tornilleria" encuentra "tornillería").
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}
