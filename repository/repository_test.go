package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCartRepository_GetOrCreate_Existing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	cartID := uuid.New()
	productID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "carts" WHERE session_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "total_price", "item_count", "created_at", "updated_at"}).
			AddRow(cartID, "abc", "20.00", 2, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cart_items" WHERE "cart_items"."cart_id" = $1`)).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "product_name", "quantity", "unit_price", "total_price"}).
			AddRow(uuid.New(), cartID, productID, "Linen Shirt", 2, "10.00", "20.00"))

	cart, err := repo.GetOrCreate(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, productID, cart.Items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_GetOrCreate_New(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	cartID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "carts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "carts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID))
	mock.ExpectCommit()

	cart, err := repo.GetOrCreate(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, cartID, cart.ID)
	assert.True(t, cart.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectLockedCart(mock sqlmock.Sqlmock, cartID uuid.UUID, lines *sqlmock.Rows) {
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "carts" WHERE session_id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "total_price", "item_count", "created_at", "updated_at"}).
			AddRow(cartID, "abc", "20.00", 2, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cart_items" WHERE cart_id = $1 ORDER BY created_at ASC FOR UPDATE`)).
		WithArgs(cartID).
		WillReturnRows(lines)
}

func TestOrderRepository_CreateFromCart_LocksAndSnapshots(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	cartID := uuid.New()
	lineID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	expectLockedCart(mock, cartID, sqlmock.NewRows([]string{"id", "cart_id", "product_id", "product_name", "quantity", "unit_price", "total_price"}).
		AddRow(lineID, cartID, productID, "Linen Shirt", 2, "10.00", "20.00"))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items" WHERE id IN ($1)`)).
		WithArgs(lineID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "carts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var seen *models.Cart
	order, err := repo.CreateFromCart(context.Background(), "abc", func(cart *models.Cart) *models.Order {
		seen = cart
		return &models.Order{
			OrderNumber: "ORD-1A2B3C4D",
			Status:      models.OrderStatusPending,
			TotalAmount: decimal.NewFromInt(20),
			Items: []models.OrderItem{
				{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20)},
			},
		}
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1A2B3C4D", order.OrderNumber)
	require.NotNil(t, seen)
	require.Len(t, seen.Items, 1)
	assert.Equal(t, productID, seen.Items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateFromCart_EmptyAfterLock(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	expectLockedCart(mock, uuid.New(), sqlmock.NewRows([]string{"id", "cart_id", "product_id"}))
	mock.ExpectRollback()

	built := false
	_, err := repo.CreateFromCart(context.Background(), "abc", func(*models.Cart) *models.Order {
		built = true
		return &models.Order{}
	})
	assert.ErrorIs(t, err, repository.ErrEmptyCart)
	assert.False(t, built)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateFromCart_RollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	cartID := uuid.New()
	mock.ExpectBegin()
	expectLockedCart(mock, cartID, sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity", "unit_price", "total_price"}).
		AddRow(uuid.New(), cartID, uuid.New(), 1, "10.00", "10.00"))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := repo.CreateFromCart(context.Background(), "abc", func(*models.Cart) *models.Order {
		return &models.Order{OrderNumber: "ORD-X"}
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByStatus_IgnoresCase(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE UPPER(status) = UPPER($1)`)).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))

	orders, err := repo.FindByStatus(context.Background(), "pending")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestProductRepository_Find_Filters(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE is_active = $1 AND LOWER(name) LIKE $2 ORDER BY created_at DESC`)).
		WithArgs(true, "%50\\% shirt%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	products, err := repo.Find(context.Background(), repository.ProductFilter{ActiveOnly: true, NameContains: "50% Shirt"})
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_CountByRole_Active(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUserRepository(gormDB)

	active := true
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE role = $1 AND is_active = $2`)).
		WithArgs(models.RoleCustomer, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByRole(context.Background(), models.RoleCustomer, &active)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE LOWER(email) = LOWER($1)`)).
		WithArgs("Ana@Example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "Ana@Example.com")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestActivityRepository_MarkAllAsRead(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormActivityRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "activities" SET "is_read"=$1 WHERE is_read = $2`)).
		WithArgs(true, false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := repo.MarkAllAsRead(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestAdminSessionRepository_Replace(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAdminSessionRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "admin_sessions"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	s := &models.AdminSession{Token: "t1", Username: "admin", IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Replace(context.Background(), s))
	assert.Equal(t, models.AdminSessionSlot, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminSessionRepository_DeleteByToken_Stale(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAdminSessionRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "admin_sessions"`)).
		WithArgs(models.AdminSessionSlot, "old").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.DeleteByToken(context.Background(), "old")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestStatsRepository_SumRevenue(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormStatsRepository(gormDB)

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(total_amount), 0) FROM "orders" WHERE created_at >= $1`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("125.50"))

	total, err := repo.SumRevenue(context.Background(), &since)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("125.50").Equal(total))
}

func TestStatsRepository_TopSpenders(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormStatsRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.id AS customer_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "customer_name", "total_spent"}).
			AddRow(id, "ana", "300.00"))

	spenders, err := repo.TopSpenders(context.Background(), nil, 3)
	require.NoError(t, err)
	require.Len(t, spenders, 1)
	assert.Equal(t, id, spenders[0].CustomerID)
	assert.Equal(t, "ana", spenders[0].CustomerName)
	assert.True(t, decimal.NewFromInt(300).Equal(spenders[0].TotalSpent))
}
