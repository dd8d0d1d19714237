package entity

// Brand representa una marca asociable a productos.
type Brand struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
}

// ProductBrand vincula un producto con una marca (N a N).
type ProductBrand struct {
	ID        int64
	ProductID int64
	BrandID   int64
}
