package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"snackbar/internal/models"
	"snackbar/internal/repository"
)

// DateLayout is the wire format of the dateFrom and dateTo criteria.
const DateLayout = "2006-01-02"

type OrderService interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*models.Order, error)
	GetOrders(ctx context.Context, criteria OrderCriteria) ([]models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error)
}

// OrderDraft is an order as submitted by an employee.
type OrderDraft struct {
	Type       string      `json:"type"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Note       *string     `json:"note"`
	Items      []ItemDraft `json:"items"`
}

type ItemDraft struct {
	Link        *string `json:"link"`
	ProductName string  `json:"productName"`
	// Quantity falls back to models.DefaultItemQuantity when nil.
	Quantity *int `json:"quantity"`
}

// OrderCriteria holds raw, optional listing filters. Blank values are
// ignored. An unrecognized Status does not filter at all.
type OrderCriteria struct {
	Name       string
	Department string
	Status     string
	Type       string
	DateFrom   string
	DateTo     string
}

type orderService struct {
	orderRepo repository.OrderRepository
	location  *time.Location
	now       func() time.Time
}

// NewOrderService returns an OrderService that stamps and filters orders in
// location. A nil location means time.Local and a nil now means time.Now.
func NewOrderService(orderRepo repository.OrderRepository, location *time.Location, now func() time.Time) OrderService {
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &orderService{orderRepo: orderRepo, location: location, now: now}
}

func (s *orderService) CreateOrder(ctx context.Context, draft OrderDraft) (*models.Order, error) {
	order, err := s.buildOrder(draft)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return order, nil
}

func (s *orderService) buildOrder(draft OrderDraft) (*models.Order, error) {
	var v validation

	order := &models.Order{
		Type:       strings.TrimSpace(draft.Type),
		Name:       strings.TrimSpace(draft.Name),
		Department: strings.TrimSpace(draft.Department),
		Note:       optionalString(draft.Note),
		Status:     models.OrderPending,
		// Microsecond precision matches timestamptz.
		CreatedAt: s.now().In(s.location).Truncate(time.Microsecond),
	}
	if order.Type == "" {
		v.add("type", "type is required")
	}
	if order.Name == "" {
		v.add("name", "name is required")
	}
	if order.Department == "" {
		v.add("department", "department is required")
	}
	if len(draft.Items) == 0 {
		v.add("items", "at least one item is required")
	}

	order.Items = make([]models.OrderItem, 0, len(draft.Items))
	for i, d := range draft.Items {
		item := models.OrderItem{
			Link:        optionalString(d.Link),
			ProductName: strings.TrimSpace(d.ProductName),
			Quantity:    models.DefaultItemQuantity,
		}
		if item.ProductName == "" {
			v.add(fmt.Sprintf("items[%d].productName", i), "product name is required")
		}
		if d.Quantity != nil {
			if *d.Quantity < 1 {
				v.add(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
			}
			item.Quantity = *d.Quantity
		}
		order.Items = append(order.Items, item)
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, criteria OrderCriteria) ([]models.Order, error) {
	filter, err := s.buildFilter(criteria)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

func (s *orderService) buildFilter(criteria OrderCriteria) (repository.OrderFilter, error) {
	var v validation
	filter := repository.OrderFilter{
		Name:       strings.TrimSpace(criteria.Name),
		Department: strings.TrimSpace(criteria.Department),
		Type:       strings.TrimSpace(criteria.Type),
	}

	// Reads are permissive: an unknown status means no status filter.
	if status, ok := models.ParseOrderStatus(strings.TrimSpace(criteria.Status)); ok {
		filter.Status = &status
	}

	if raw := strings.TrimSpace(criteria.DateFrom); raw != "" {
		from, err := time.ParseInLocation(DateLayout, raw, s.location)
		if err != nil {
			v.add("dateFrom", "dateFrom must be formatted as yyyy-MM-dd")
		} else {
			filter.CreatedFrom = &from
		}
	}
	if raw := strings.TrimSpace(criteria.DateTo); raw != "" {
		to, err := time.ParseInLocation(DateLayout, raw, s.location)
		if err != nil {
			v.add("dateTo", "dateTo must be formatted as yyyy-MM-dd")
		} else {
			// The whole calendar day is included.
			before := to.AddDate(0, 0, 1)
			filter.CreatedBefore = &before
		}
	}

	return filter, v.err()
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err, "get order")
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	// Writes are strict: only the three known statuses are accepted.
	next, ok := models.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, &ValidationError{
			Message: fmt.Sprintf("invalid status %q: must be one of %s", status, statusList()),
			Fields:  []string{"status"},
		}
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, s.lookupError(id, err, "update order status")
	}
	return order, nil
}

func (s *orderService) lookupError(id uint, err error, op string) error {
	if errors.Is(err, repository.ErrOrderNotFound) {
		return &NotFoundError{ID: id}
	}
	return errors.Wrap(err, op)
}

func statusList() string {
	names := make([]string, len(models.OrderStatuses))
	for i, st := range models.OrderStatuses {
		names[i] = st.String()
	}
	return strings.Join(names, ", ")
}

// optionalString trims s and maps blank values to nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
