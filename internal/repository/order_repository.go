package repository

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"snackbar/internal/models"
)

// OrderRepository persists orders together with their items. Items have no
// lookup path of their own.
type OrderRepository interface {
	// Create stores the order and all of its items atomically and fills in
	// the assigned ids.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// List returns matching orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	// UpdateStatus overwrites the status and returns the stored order.
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	Ping(ctx context.Context) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func itemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return storageError("create order", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", itemsByID).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError("get order", err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items", itemsByID)

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at < ?", *filter.CreatedBefore)
	}

	orders := []models.Order{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, storageError("list orders", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return tx.Preload("Items", itemsByID).First(&order, id).Error
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError("update order status", err)
	}
	return &order, nil
}

func (r *orderRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storageError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}
