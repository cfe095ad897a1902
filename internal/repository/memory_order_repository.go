package repository

import (
	"context"
	"sort"
	"sync"

	"snackbar/internal/models"
)

// memoryOrderRepository keeps orders in process memory. Stored orders are
// private copies; every read hands out a fresh clone.
type memoryOrderRepository struct {
	mu        sync.RWMutex
	lastOrder uint
	lastItem  uint
	orders    map[uint]*models.Order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[uint]*models.Order)}
}

func (r *memoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastOrder++
	order.ID = r.lastOrder
	for i := range order.Items {
		r.lastItem++
		order.Items[i].ID = r.lastItem
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *memoryOrderRepository) GetByID(_ context.Context, id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o.Clone(), nil
}

func (r *memoryOrderRepository) List(_ context.Context, filter OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	orders := []models.Order{}
	for _, o := range r.orders {
		if filter.Matches(o) {
			orders = append(orders, *o.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *memoryOrderRepository) UpdateStatus(_ context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	return o.Clone(), nil
}

func (r *memoryOrderRepository) Ping(context.Context) error {
	return nil
}
