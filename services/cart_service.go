package services

import (
	"context"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
)

// CartService manages session carts. Every mutation recomputes the cart
// totals from the remaining lines before returning.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("session id is required")
	}
	cart, err := s.carts.GetOrCreate(ctx, sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		return nil, apperrors.FromDB(err, "Cart not found")
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// AddToCart merges quantity into an existing line for the product, keeping
// the price snapshot taken when the line was created.
func (s *cartServiceImpl) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperrors.FromDB(err, "Product not found")
	}

	item := cart.FindItem(productID)
	if item != nil {
		item.SetQuantity(item.Quantity + quantity)
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			Size:        product.Size,
			Color:       product.Color,
			UnitPrice:   product.Price,
		})
		item = &cart.Items[len(cart.Items)-1]
		item.SetQuantity(quantity)
	}

	if err := s.carts.SaveItem(ctx, item); err != nil {
		s.logger.Error("Failed to save cart item", zap.String("session_id", sessionID), zap.Error(err))
		return nil, apperrors.FromDB(err, "Cart item not found")
	}
	return s.persistTotals(ctx, cart)
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(productID) {
		return cart, nil
	}
	if err := s.carts.DeleteItem(ctx, cart.ID, productID); err != nil {
		return nil, apperrors.FromDB(err, "Cart item not found")
	}
	return s.persistTotals(ctx, cart)
}

// UpdateCartItem sets the line quantity; zero or less removes the line. A
// product that is not in the cart is ignored.
func (s *cartServiceImpl) UpdateCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, sessionID, productID)
	}
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item := cart.FindItem(productID)
	if item == nil {
		return cart, nil
	}
	item.SetQuantity(quantity)
	if err := s.carts.SaveItem(ctx, item); err != nil {
		return nil, apperrors.FromDB(err, "Cart item not found")
	}
	return s.persistTotals(ctx, cart)
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, sessionID string) error {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("session_id", sessionID), zap.Error(err))
		return apperrors.FromDB(err, "Cart not found")
	}
	return nil
}

func (s *cartServiceImpl) persistTotals(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.Recalculate()
	if err := s.carts.UpdateTotals(ctx, cart); err != nil {
		return nil, apperrors.FromDB(err, "Cart not found")
	}
	return cart, nil
}
