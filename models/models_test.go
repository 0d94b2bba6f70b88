package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(productID uuid.UUID, price string, qty int) CartItem {
	item := CartItem{ProductID: productID, UnitPrice: decimal.RequireFromString(price)}
	item.SetQuantity(qty)
	return item
}

func TestCart_Recalculate(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	cart := &Cart{SessionID: "abc", Items: []CartItem{line(p1, "10.00", 2), line(p2, "5.00", 1)}}

	cart.Recalculate()
	assert.True(t, decimal.RequireFromString("25.00").Equal(cart.TotalPrice))
	assert.Equal(t, 3, cart.ItemCount)

	assert.True(t, cart.RemoveItem(p1))
	cart.Recalculate()
	assert.True(t, decimal.RequireFromString("5.00").Equal(cart.TotalPrice))
	assert.Equal(t, 1, cart.ItemCount)

	assert.False(t, cart.RemoveItem(p1))
}

func TestCart_FindItem(t *testing.T) {
	p1 := uuid.New()
	cart := &Cart{Items: []CartItem{line(p1, "3.50", 1)}}

	item := cart.FindItem(p1)
	if assert.NotNil(t, item) {
		item.SetQuantity(4)
	}
	assert.True(t, decimal.RequireFromString("14.00").Equal(cart.Items[0].TotalPrice))
	assert.Nil(t, cart.FindItem(uuid.New()))
}

func TestOrder_ApplyStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := &Order{Status: OrderStatusPending}

	assert.False(t, o.ApplyStatus("Processing", now))
	assert.Nil(t, o.CompletedAt)

	assert.True(t, o.ApplyStatus("delivered", now))
	assert.Equal(t, now, *o.CompletedAt)

	later := now.Add(time.Hour)
	assert.False(t, o.ApplyStatus("COMPLETED", later))
	assert.Equal(t, now, *o.CompletedAt)
}

func TestOrder_ItemCount(t *testing.T) {
	o := &Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, o.ItemCount())
}

func TestUpdateProductRequest_Apply(t *testing.T) {
	p := &Product{Name: "Linen Shirt", Color: "white", Price: decimal.NewFromInt(40), IsActive: true}
	name := "Linen Overshirt"
	active := false

	(&UpdateProductRequest{Name: &name, IsActive: &active}).Apply(p)

	assert.Equal(t, "Linen Overshirt", p.Name)
	assert.Equal(t, "white", p.Color)
	assert.False(t, p.IsActive)
	assert.True(t, decimal.NewFromInt(40).Equal(p.Price))
}

func TestUpdateProductRequest_Apply_Category(t *testing.T) {
	current := &Category{ID: uuid.New(), Name: "Shirts"}
	p := &Product{CategoryID: current.ID, Category: current}

	same := current.ID
	(&UpdateProductRequest{CategoryID: &same}).Apply(p)
	assert.Equal(t, current, p.Category)

	other := uuid.New()
	(&UpdateProductRequest{CategoryID: &other}).Apply(p)
	assert.Equal(t, other, p.CategoryID)
	assert.Nil(t, p.Category)
}

func TestUpdateCustomerRequest_Apply(t *testing.T) {
	u := &User{FullName: "Ana", City: "Porto"}
	city := "Lisbon"

	(&UpdateCustomerRequest{City: &city}).Apply(u)

	assert.Equal(t, "Ana", u.FullName)
	assert.Equal(t, "Lisbon", u.City)
}

func TestAdminSession_Expired(t *testing.T) {
	now := time.Now()
	s := &AdminSession{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}
