package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testLogger = zap.NewNop()

// ---- carts ----

type memCartRepo struct {
	carts map[string]*models.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*models.Cart{}}
}

func copyCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem{}, c.Items...)
	return &cp
}

func (m *memCartRepo) byID(id uuid.UUID) *models.Cart {
	for _, c := range m.carts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *memCartRepo) GetOrCreate(_ context.Context, sessionID string) (*models.Cart, error) {
	c, ok := m.carts[sessionID]
	if !ok {
		c = &models.Cart{ID: uuid.New(), SessionID: sessionID, Items: []models.CartItem{}}
		m.carts[sessionID] = c
	}
	return copyCart(c), nil
}

func (m *memCartRepo) SaveItem(_ context.Context, item *models.CartItem) error {
	c := m.byID(item.CartID)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
		c.Items = append(c.Items, *item)
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity = item.Quantity
			c.Items[i].TotalPrice = item.TotalPrice
		}
	}
	return nil
}

func (m *memCartRepo) DeleteItem(_ context.Context, cartID, productID uuid.UUID) error {
	m.byID(cartID).RemoveItem(productID)
	return nil
}

func (m *memCartRepo) ClearItems(_ context.Context, cartID uuid.UUID) error {
	c := m.byID(cartID)
	c.Items = []models.CartItem{}
	c.TotalPrice = decimal.Zero
	c.ItemCount = 0
	return nil
}

func (m *memCartRepo) UpdateTotals(_ context.Context, cart *models.Cart) error {
	c := m.byID(cart.ID)
	c.TotalPrice = cart.TotalPrice
	c.ItemCount = cart.ItemCount
	return nil
}

// ---- products & categories ----

type memProductRepo struct {
	products   map[uuid.UUID]*models.Product
	lastFilter repository.ProductFilter
	finds      int
}

func newMemProductRepo(products ...*models.Product) *memProductRepo {
	m := &memProductRepo{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) Find(_ context.Context, f repository.ProductFilter) ([]models.Product, error) {
	m.lastFilter = f
	m.finds++
	var out []models.Product
	for _, p := range m.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Gender != "" && p.Gender != strings.ToUpper(f.Gender) {
			continue
		}
		if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		out = append(out, *p)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) Create(_ context.Context, p *models.Product) error {
	for _, existing := range m.products {
		if existing.SKU == p.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Update(_ context.Context, p *models.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "is_active":
			p.IsActive = v.(bool)
		case "is_featured":
			p.IsFeatured = v.(bool)
		case "stock_quantity":
			p.StockQuantity = v.(int)
		}
	}
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

type memCategoryRepo struct {
	categories []models.Category
}

func (m *memCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCategoryRepo) Create(_ context.Context, c *models.Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	m.categories = append(m.categories, *c)
	return nil
}

// ---- orders ----

type memOrderRepo struct {
	carts     *memCartRepo
	orders    map[uuid.UUID]*models.Order
	createErr error
	creates   int
	updates   int
}

func newMemOrderRepo(carts *memCartRepo) *memOrderRepo {
	return &memOrderRepo{carts: carts, orders: map[uuid.UUID]*models.Order{}}
}

func (m *memOrderRepo) CreateFromCart(ctx context.Context, sessionID string, build func(cart *models.Cart) *models.Order) (*models.Order, error) {
	c, ok := m.carts.carts[sessionID]
	if !ok || c.IsEmpty() {
		return nil, repository.ErrEmptyCart
	}
	if m.createErr != nil {
		return nil, m.createErr
	}
	order := build(copyCart(c))
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	cp := *order
	m.orders[order.ID] = &cp
	m.creates++
	return order, m.carts.ClearItems(ctx, c.ID)
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) FindByNumber(_ context.Context, n string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == n {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrderRepo) FindByCustomerID(_ context.Context, id uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.CustomerID != nil && *o.CustomerID == id {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindByStatus(_ context.Context, status string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if strings.EqualFold(o.Status, status) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	var all []models.Order
	for _, o := range m.orders {
		all = append(all, *o)
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *memOrderRepo) Update(_ context.Context, o *models.Order) error {
	m.updates++
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

// ---- activities ----

type memActivityRepo struct {
	activities []models.Activity
}

func (m *memActivityRepo) Create(_ context.Context, a *models.Activity) error {
	a.ID = uuid.New()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.activities = append(m.activities, *a)
	return nil
}

func (m *memActivityRepo) FindAll(_ context.Context) ([]models.Activity, error) {
	return m.activities, nil
}

func (m *memActivityRepo) FindUnread(_ context.Context) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range m.activities {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityRepo) CountUnread(ctx context.Context) (int64, error) {
	unread, _ := m.FindUnread(ctx)
	return int64(len(unread)), nil
}

func (m *memActivityRepo) MarkAsRead(_ context.Context, id uuid.UUID) error {
	for i := range m.activities {
		if m.activities[i].ID == id {
			m.activities[i].IsRead = true
		}
	}
	return nil
}

func (m *memActivityRepo) MarkAllAsRead(_ context.Context) (int64, error) {
	var n int64
	for i := range m.activities {
		if !m.activities[i].IsRead {
			m.activities[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memActivityRepo) types() []string {
	var out []string
	for _, a := range m.activities {
		out = append(out, a.Type)
	}
	return out
}

// ---- users ----

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role models.Role, active *bool) (int64, error) {
	args := m.Called(ctx, role, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// ---- admin sessions ----

type memSessionRepo struct {
	session *models.AdminSession
}

func (m *memSessionRepo) Replace(_ context.Context, s *models.AdminSession) error {
	s.ID = models.AdminSessionSlot
	cp := *s
	m.session = &cp
	return nil
}

func (m *memSessionRepo) Get(_ context.Context) (*models.AdminSession, error) {
	if m.session == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.session
	return &cp, nil
}

func (m *memSessionRepo) DeleteByToken(_ context.Context, token string) (bool, error) {
	if m.session == nil || m.session.Token != token {
		return false, nil
	}
	m.session = nil
	return true, nil
}

// ---- stats ----

type stubStatsRepo struct {
	customers, products, orders, dailyOrders int64
	revenue, dailyRevenue                   decimal.Decimal
	todaySpenders, allTimeSpenders          []models.TopSpender
	categorySales                           []models.CategorySales
	lastSince                               time.Time
}

func (s *stubStatsRepo) CountCustomers(context.Context) (int64, error) { return s.customers, nil }
func (s *stubStatsRepo) CountActiveProducts(context.Context) (int64, error) { return s.products, nil }

func (s *stubStatsRepo) CountOrders(_ context.Context, since *time.Time) (int64, error) {
	if since != nil {
		return s.dailyOrders, nil
	}
	return s.orders, nil
}

func (s *stubStatsRepo) SumRevenue(_ context.Context, since *time.Time) (decimal.Decimal, error) {
	if since != nil {
		return s.dailyRevenue, nil
	}
	return s.revenue, nil
}

func (s *stubStatsRepo) TopSpenders(_ context.Context, since *time.Time, limit int) ([]models.TopSpender, error) {
	if since != nil {
		return s.todaySpenders, nil
	}
	return s.allTimeSpenders, nil
}

func (s *stubStatsRepo) QuantityByCategory(_ context.Context, since time.Time) ([]models.CategorySales, error) {
	s.lastSince = since
	return s.categorySales, nil
}

// ---- SNS ----

type published struct {
	eventType string
	body      []byte
}

type recordingSNS struct {
	mu       sync.Mutex
	messages []published
}

func (r *recordingSNS) Publish(ctx context.Context, topicArn string, message []byte) error {
	return r.PublishWithType(ctx, topicArn, "", message)
}

func (r *recordingSNS) PublishWithType(_ context.Context, _ string, eventType string, message []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, published{eventType: eventType, body: message})
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
