// Package usecase contiene los casos de uso CRUD de catálogo (productos y usuarios).
package usecase

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	domaccess "github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ProductUseCase administra el catálogo de productos.
type ProductUseCase struct {
	products repository.ProductRepository
	brands   repository.BrandRepository
	recorder audit.Recorder
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(products repository.ProductRepository, brands repository.BrandRepository, recorder audit.Recorder, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, brands: brands, recorder: recorder, log: log}
}

// Create da de alta un producto y lo vincula a las marcas indicadas.
// El código principal es único: el repositorio devuelve ErrDuplicateCode
// si ya existe.
func (uc *ProductUseCase) Create(actor domaccess.Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	for _, brandID := range req.BrandIDs {
		if _, err := uc.brands.GetActiveByID(brandID); err != nil {
			return nil, err
		}
	}

	product := &entity.Product{
		Name:         req.Name,
		Name2:        req.Name2,
		MainCode:     req.MainCode,
		Code2:        req.Code2,
		Code3:        req.Code3,
		ReorderPoint: req.ReorderPoint,
		SafetyStock:  req.SafetyStock,
		IsActive:     true,
		CreatedDate:  time.Now().UTC(),
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	for _, brandID := range req.BrandIDs {
		if err := uc.brands.LinkProduct(product.ID, brandID); err != nil {
			return nil, err
		}
	}

	uc.log.Info().Int64("product_id", product.ID).Str("main_code", product.MainCode).Msg("Producto creado")
	uc.recorder.Record(audit.Entry{
		TableName: "Products",
		RecordID:  product.ID,
		Action:    entity.AuditActionCreate,
		NewValues: product,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})

	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID devuelve un producto activo.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.products.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update aplica cambios parciales. El código principal no se modifica por
// esta vía (es el identificador de negocio del producto).
func (uc *ProductUseCase) Update(actor domaccess.Actor, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	old := *product

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Name2 != nil {
		product.Name2 = *req.Name2
	}
	if req.Code2 != nil {
		product.Code2 = *req.Code2
	}
	if req.Code3 != nil {
		product.Code3 = *req.Code3
	}
	if req.ReorderPoint != nil {
		product.ReorderPoint = *req.ReorderPoint
	}
	if req.SafetyStock != nil {
		product.SafetyStock = *req.SafetyStock
	}
	now := time.Now().UTC()
	product.ModifiedDate = &now

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	uc.recorder.Record(audit.Entry{
		TableName: "Products",
		RecordID:  product.ID,
		Action:    entity.AuditActionUpdate,
		OldValues: old,
		NewValues: product,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})

	resp := toProductResponse(product)
	return &resp, nil
}

// List devuelve productos activos; search filtra por nombre o código sin
// distinguir mayúsculas ni acentos.
func (uc *ProductUseCase) List(search string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete desactiva el producto (soft delete). Su historial de operaciones
// y sus filas de inventario se conservan.
func (uc *ProductUseCase) Delete(actor domaccess.Actor, id int64) error {
	product, err := uc.products.GetActiveByID(id)
	if err != nil {
		return err
	}
	if err := uc.products.SoftDelete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("product_id", id).Msg("Producto desactivado")
	uc.recorder.Record(audit.Entry{
		TableName: "Products",
		RecordID:  id,
		Action:    entity.AuditActionDelete,
		OldValues: product,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Name2:         p.Name2,
		MainCode:      p.MainCode,
		Code2:         p.Code2,
		Code3:         p.Code3,
		TotalQuantity: p.TotalQuantity,
		ReorderPoint:  p.ReorderPoint,
		SafetyStock:   p.SafetyStock,
		IsActive:      p.IsActive,
		CreatedDate:   p.CreatedDate,
		ModifiedDate:  p.ModifiedDate,
	}
}
