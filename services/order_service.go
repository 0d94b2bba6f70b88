package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// OrderService handles checkout and order administration.
type OrderService interface {
	PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error)
	GetAllOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error)
}

type orderServiceImpl struct {
	orders     repository.OrderRepository
	activities ActivityService
	events     *EventPublisher
	metrics    Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	activities ActivityService,
	events *EventPublisher,
	metrics Metrics,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:     orders,
		activities: activities,
		events:     events,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// NewOrderNumber returns "ORD-" followed by eight upper-case hex characters.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// PlaceOrder turns the session's cart into a PENDING order. The cart is read
// under a row lock, and the order, its items and the emptied cart are
// committed together.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.orders.CreateFromCart(ctx, req.SessionID, func(cart *models.Cart) *models.Order {
		return newOrderFromCart(cart, req)
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			return nil, apperrors.ErrEmptyCart
		}
		s.logger.Error("Failed to create order", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, apperrors.Internal("Failed to create order", err).WithCode("ORDER_CREATION_FAILED")
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)

	if err := s.activities.LogOrderPlaced(ctx, order); err != nil {
		s.logger.Warn("Failed to log order activity", zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	event := models.OrderPlacedEvent{
		EventType:   EventOrderPlaced,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Email:       order.CustomerEmail,
		ItemCount:   order.ItemCount(),
		Total:       order.TotalAmount,
		Timestamp:   s.now(),
	}
	if order.CustomerID != nil {
		event.CustomerID = order.CustomerID.String()
	}
	s.events.Publish(ctx, EventOrderPlaced, event)

	recordCount(s.metrics, s.logger, aws_pkg.MetricOrdersCreated)
	recordCount(s.metrics, s.logger, aws_pkg.MetricCartCheckouts)
	recordValue(s.metrics, s.logger, aws_pkg.MetricOrderValue, order.TotalAmount.InexactFloat64())

	return order, nil
}

func newOrderFromCart(cart *models.Cart, req *models.CreateOrderRequest) *models.Order {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TotalPrice:  line.TotalPrice,
		})
	}
	cart.Recalculate()

	return &models.Order{
		OrderNumber:        NewOrderNumber(),
		CustomerID:         req.CustomerID,
		CustomerEmail:      req.CustomerEmail,
		CustomerName:       req.CustomerName,
		Subtotal:           cart.TotalPrice,
		TaxAmount:          decimal.Zero,
		ShippingAmount:     decimal.Zero,
		DiscountAmount:     decimal.Zero,
		TotalAmount:        cart.TotalPrice,
		Status:             models.OrderStatusPending,
		ShippingAddress:    req.ShippingAddress,
		ShippingCity:       req.ShippingCity,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingCountry:    req.ShippingCountry,
		PaymentMethod:      req.PaymentMethod,
		CustomerNotes:      req.CustomerNotes,
		Items:              items,
	}
}

func (s *orderServiceImpl) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.orders.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}
	return nonNilOrders(orders), nil
}

func (s *orderServiceImpl) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	orders, err := s.orders.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}
	return nonNilOrders(orders), nil
}

// GetAllOrders returns one page of orders, newest first.
func (s *orderServiceImpl) GetAllOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	orders, total, err := s.orders.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &models.OrderListResponse{
		Orders: nonNilOrders(orders),
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
	}, nil
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, apperrors.Validation("status is required")
	}
	return s.UpdateOrder(ctx, id, &models.UpdateOrderRequest{Status: &status})
}

// UpdateOrder applies an admin edit. Reaching COMPLETED or DELIVERED for the
// first time stamps the completion time and records an activity.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err, "Order not found")
	}

	completed := false
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		completed = order.ApplyStatus(strings.TrimSpace(*req.Status), s.now())
	}
	if req.AdminNotes != nil {
		order.AdminNotes = *req.AdminNotes
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update order", err).WithCode("ORDER_UPDATE_FAILED")
	}

	if completed {
		s.logger.Info("Order completed", zap.String("order_number", order.OrderNumber), zap.String("status", order.Status))
		if err := s.activities.LogOrderCompleted(ctx, order); err != nil {
			s.logger.Warn("Failed to log order completion", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
		recordCount(s.metrics, s.logger, aws_pkg.MetricOrdersCompleted)
	}
	return order, nil
}

func nonNilOrders(orders []models.Order) []models.Order {
	if orders == nil {
		return []models.Order{}
	}
	return orders
}
