package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	aws_pkg "github.com/yashrajoria/atelier-backend/pkg/aws"
	"github.com/yashrajoria/atelier-backend/models"
)

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *MockCartService) UpdateCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) GetAllOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error) {
	args := m.Called(ctx, page, limit)
	resp, _ := args.Get(0).(*models.OrderListResponse)
	return resp, args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, id, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

// fakeProductService records the last call; unused methods return zero values.
type fakeProductService struct {
	products   []models.ProductResponse
	err        error
	lastLimit  int
	lastQuery  string
	createdBy  string
	lastActive *bool
	upload     *aws_pkg.PresignedUpload
}

func (f *fakeProductService) ListActive(ctx context.Context) ([]models.ProductResponse, error) {
	return f.products, f.err
}

func (f *fakeProductService) ListFeatured(ctx context.Context) ([]models.ProductResponse, error) {
	return f.products, f.err
}

func (f *fakeProductService) ListLatest(ctx context.Context, limit int) ([]models.ProductResponse, error) {
	f.lastLimit = limit
	return f.products, f.err
}

func (f *fakeProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ProductResponse, error) {
	return f.products, f.err
}

func (f *fakeProductService) ListByGender(ctx context.Context, gender string) ([]models.ProductResponse, error) {
	return f.products, f.err
}

func (f *fakeProductService) Search(ctx context.Context, query string) ([]models.ProductResponse, error) {
	f.lastQuery = query
	return f.products, f.err
}

func (f *fakeProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.ProductResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.products[0], nil
}

func (f *fakeProductService) ListAll(ctx context.Context) ([]models.ProductResponse, error) {
	return f.products, f.err
}

func (f *fakeProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, createdBy string) (*models.ProductResponse, error) {
	f.createdBy = createdBy
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProductResponse{Product: models.Product{Name: req.Name, SKU: req.SKU}}, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.ProductResponse, error) {
	return nil, f.err
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func (f *fakeProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.ProductResponse, error) {
	f.lastActive = &active
	if f.err != nil {
		return nil, f.err
	}
	return &models.ProductResponse{Product: models.Product{ID: id, IsActive: active}}, nil
}

func (f *fakeProductService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.ProductResponse, error) {
	return nil, f.err
}

func (f *fakeProductService) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.ProductResponse, error) {
	return nil, f.err
}

func (f *fakeProductService) CreateImageUploadURL(ctx context.Context, req *models.ImageUploadRequest) (*aws_pkg.PresignedUpload, error) {
	return f.upload, f.err
}

type MockAdminAuthService struct{ mock.Mock }

func (m *MockAdminAuthService) Login(ctx context.Context, username, password string) (*models.AdminLoginResponse, error) {
	args := m.Called(ctx, username, password)
	resp, _ := args.Get(0).(*models.AdminLoginResponse)
	return resp, args.Error(1)
}

func (m *MockAdminAuthService) Validate(ctx context.Context, token string) (*models.AdminSession, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.AdminSession)
	return session, args.Error(1)
}

func (m *MockAdminAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}

type MockActivityService struct{ mock.Mock }

func (m *MockActivityService) LogActivity(ctx context.Context, activityType, title, description string, user *models.User) (*models.Activity, error) {
	args := m.Called(ctx, activityType, title, description, user)
	a, _ := args.Get(0).(*models.Activity)
	return a, args.Error(1)
}

func (m *MockActivityService) LogEvent(ctx context.Context, event models.ActivityEvent) (*models.Activity, error) {
	args := m.Called(ctx, event)
	a, _ := args.Get(0).(*models.Activity)
	return a, args.Error(1)
}

func (m *MockActivityService) LogCustomerSignup(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockActivityService) LogOrderPlaced(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockActivityService) LogOrderCompleted(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockActivityService) GetAll(ctx context.Context) ([]models.ActivityResponse, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.ActivityResponse)
	return out, args.Error(1)
}

func (m *MockActivityService) GetNotifications(ctx context.Context) (*models.NotificationsResponse, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*models.NotificationsResponse)
	return out, args.Error(1)
}

func (m *MockActivityService) UnreadCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActivityService) MarkAllAsRead(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*models.DashboardStats)
	return out, args.Error(1)
}

func (m *MockDashboardService) GetTopSpenders(ctx context.Context) ([]models.TopSpender, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]models.TopSpender)
	return out, args.Error(1)
}

func (m *MockDashboardService) GetSalesByCategory(ctx context.Context, period string) ([]models.CategorySales, error) {
	args := m.Called(ctx, period)
	out, _ := args.Get(0).([]models.CategorySales)
	return out, args.Error(1)
}
