package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

// customProductID marks an ad-hoc order line that does not reference
// inventory.
const customProductID = "custom"

type OrderService struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, productRepo *repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

type CreateOrderInput struct {
	ClientID      string
	Items         []model.OrderItem
	Total         float64
	PaymentMethod string
	PaymentStatus model.PaymentStatus
	AmountPaid    float64
	OrderDate     *time.Time
	DeliveryDate  *time.Time
	Note          string
}

// Create reserves stock before the order row exists. Each inventory
// line is a conditional decrement; the first line that cannot be
// satisfied aborts the order and the already reserved lines are
// released again.
func (s *OrderService) Create(ctx context.Context, principal model.Principal, input CreateOrderInput) (*model.Order, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	clientID, err := uuid.Parse(input.ClientID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	reserved := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if !tracksInventory(item) {
			continue
		}
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, fmt.Errorf("%w: product %s out of stock", ErrConflict, item.ProductID)
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown product %s", ErrInvalidInput, item.ProductID)
			}
			return nil, err
		}
		reserved = append(reserved, item)
	}

	now := time.Now()
	orderDate := now
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}
	deliveryDate := now.Add(7 * 24 * time.Hour)
	if input.DeliveryDate != nil {
		deliveryDate = *input.DeliveryDate
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentStatusNotPaid
	}

	order := &model.Order{
		ClientID:      clientID,
		Items:         input.Items,
		Total:         input.Total,
		Status:        model.OrderStatusPending,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		AmountPaid:    input.AmountPaid,
		OrderDate:     orderDate,
		DeliveryDate:  deliveryDate,
		Note:          input.Note,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, principal model.Principal, id string) (*model.Order, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, principal model.Principal, filter repository.OrderListFilter) ([]model.Order, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.orderRepo.List(ctx, filter)
}

type UpdateOrderInput struct {
	Status        *model.OrderStatus
	PaymentMethod *string
	PaymentStatus *model.PaymentStatus
	AmountPaid    *float64
	DeliveryDate  *time.Time
	Note          *string
}

func (s *OrderService) Update(ctx context.Context, principal model.Principal, id string, input UpdateOrderInput) (*model.Order, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Status != nil {
		if !validOrderStatus(*input.Status) {
			return nil, ErrInvalidInput
		}
		order.Status = *input.Status
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		if !validPaymentStatus(*input.PaymentStatus) {
			return nil, ErrInvalidInput
		}
		order.PaymentStatus = *input.PaymentStatus
	}
	if input.AmountPaid != nil {
		order.AmountPaid = *input.AmountPaid
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = *input.DeliveryDate
	}
	if input.Note != nil {
		order.Note = *input.Note
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, principal model.Principal, id string, status model.OrderStatus) (*model.Order, error) {
	return s.Update(ctx, principal, id, UpdateOrderInput{Status: &status})
}

func (s *OrderService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsSuperAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) releaseStock(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		// Best effort: a failed release leaves a stock correction for an
		// operator and must not mask the create error.
		_ = s.productRepo.IncrementStock(ctx, item.ProductID, item.Quantity)
	}
}

func tracksInventory(item model.OrderItem) bool {
	return item.ProductID != "" && item.ProductID != customProductID
}

func validOrderStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusReadyForPickup,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(status model.PaymentStatus) bool {
	switch status {
	case model.PaymentStatusNotPaid, model.PaymentStatusPartiallyPaid, model.PaymentStatusPaid:
		return true
	}
	return false
}
