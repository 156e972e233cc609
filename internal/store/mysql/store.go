// Package mysql implements the quote.Store port over a MySQL reference
// database using GORM.
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tournevent/pricing/pkg/quote"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is a read-only quote.Store backed by MySQL.
type Store struct {
	db *gorm.DB
}

// Open connects to MySQL and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("obtaining sql db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// New wraps an existing gorm handle, for tests.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindSeller(ctx context.Context, id int64) (*quote.Seller, error) {
	var model sellerModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, mapErr(err, quote.KindSeller, id)
	}
	return toDomainSeller(&model), nil
}

func (s *Store) FindCustomer(ctx context.Context, id int64) (*quote.Customer, error) {
	var model customerModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, mapErr(err, quote.KindCustomer, id)
	}
	return toDomainCustomer(&model), nil
}

func (s *Store) FindProduct(ctx context.Context, id int64) (*quote.Product, error) {
	var model productModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, mapErr(err, quote.KindProduct, id)
	}
	return toDomainProduct(&model), nil
}

func (s *Store) FindWarehouse(ctx context.Context, id int64) (*quote.Warehouse, error) {
	var model warehouseModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, mapErr(err, quote.KindWarehouse, id)
	}
	wh := toDomainWarehouse(&model)
	return &wh, nil
}

func (s *Store) ListWarehouses(ctx context.Context) ([]quote.Warehouse, error) {
	var models []warehouseModel
	if err := s.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	warehouses := make([]quote.Warehouse, len(models))
	for i := range models {
		warehouses[i] = toDomainWarehouse(&models[i])
	}
	return warehouses, nil
}

func (s *Store) FindInventory(ctx context.Context, warehouseID, productID int64) (*quote.InventoryRecord, error) {
	var model inventoryModel
	err := s.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&model).Error
	if err != nil {
		return nil, mapErr(err, quote.KindInventory, productID)
	}
	return toDomainInventory(&model), nil
}

func mapErr(err error, kind quote.EntityKind, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quote.NotFound(kind, id)
	}
	return fmt.Errorf("querying %s %d: %w", kind, id, err)
}
