package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

// cartStore is the slice of the database layer the cart service needs.
type cartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID string) error
}

type productGetter interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type CartService struct {
	carts    cartStore
	products productGetter
	logger   *slog.Logger
}

func NewCartService(carts *db.CartStore, products *db.ProductStore, logger *slog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func newCartService(carts cartStore, products productGetter, logger *slog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func (s *CartService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type AddItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	ShadeID   string `json:"shadeId"`
}

// Add stages a product in the user's cart. Adding a (product, shade) pair that
// is already present increments its quantity; distinct shades of the same
// product stay separate entries. The catalog price is captured at add time.
func (s *CartService) Add(ctx context.Context, userID string, input AddItemInput) (*models.Cart, error) {
	if input.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, input.ProductID)
		}
		return nil, err
	}

	var shadeName string
	if input.ShadeID != "" {
		found := false
		for _, shade := range product.Shades {
			if shade.ID == input.ShadeID {
				shadeName = shade.Name
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: shade %s of product %s", ErrNotFound, input.ShadeID, input.ProductID)
		}
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(input.ProductID, input.ShadeID); i >= 0 {
		cart.Items[i].Quantity += input.Quantity
	} else {
		var image string
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: image,
			Price:        product.Price,
			Quantity:     input.Quantity,
			ShadeID:      input.ShadeID,
			ShadeName:    shadeName,
			SKU:          product.SKU,
			AddedAt:      time.Now().UTC(),
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity replaces the quantity of an existing cart entry.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, shadeID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID, shadeID)
	if i < 0 {
		return nil, fmt.Errorf("%w: item not in cart", ErrNotFound)
	}
	cart.Items[i].Quantity = quantity

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops one (product, shade) entry from the cart. Removing an absent
// entry is not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID, shadeID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(productID, shadeID); i >= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		if err := s.carts.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// Snapshot converts the current cart into immutable order line items, pricing
// each entry from the catalog at call time. An entry whose product has since
// left the catalog keeps the price captured when it was added.
func (s *CartService) Snapshot(ctx context.Context, userID string) ([]models.LineItem, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	items := make([]models.LineItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		price := ci.Price
		product, err := s.products.Get(ctx, ci.ProductID)
		switch {
		case err == nil:
			price = product.Price
		case !errors.Is(err, db.ErrNotFound):
			return nil, err
		}
		items = append(items, models.LineItem{
			ProductID: ci.ProductID,
			Name:      ci.ProductName,
			UnitPrice: price,
			Quantity:  ci.Quantity,
			ShadeID:   ci.ShadeID,
			ShadeName: ci.ShadeName,
			SKU:       ci.SKU,
		})
	}
	return items, nil
}
