package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
}

// LocationRepository puerto de persistencia para ubicaciones de bodega.
type LocationRepository interface {
	Create(location *entity.WarehouseLocation) error
	GetByID(id string) (*entity.WarehouseLocation, error)
	GetByCode(code string) (*entity.WarehouseLocation, error)
	Update(location *entity.WarehouseLocation) error
	List(limit, offset int) ([]*entity.WarehouseLocation, error)
}

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
