package cart

import (
	"context"
	"errors"

	"shopfront-be/internal/identity"
	"shopfront-be/internal/logger"

	"go.uber.org/zap"
)

// Service owns the cart merge/update/clear semantics. Every operation is
// keyed by the caller's identity; operations without one fail with
// identity.ErrIdentityRequired.
type Service interface {
	Get(ctx context.Context, ident identity.Identity) (*Cart, error)
	AddItem(ctx context.Context, ident identity.Identity, line Line) (*Cart, error)
	SetQuantity(ctx context.Context, ident identity.Identity, productID string, quantity int) error
	RemoveItem(ctx context.Context, ident identity.Identity, productID string) error
	Clear(ctx context.Context, ident identity.Identity) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get returns the identity's cart, creating an empty one on first access.
func (s *service) Get(ctx context.Context, ident identity.Identity) (*Cart, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.FindCart(ctx, ident)
	if errors.Is(err, ErrCartNotFound) {
		return s.repo.CreateCart(ctx, ident)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// AddItem merges the line into the identity's cart, creating the cart first
// when the identity has none yet.
func (s *service) AddItem(ctx context.Context, ident identity.Identity, line Line) (*Cart, error) {
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	if line.ProductID == "" {
		return nil, ErrMissingProduct
	}
	if line.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", line.ProductID),
		zap.Int("quantity", line.Quantity),
	)

	c, err := s.Get(ctx, ident)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddLine(ctx, c.ID, line); err != nil {
		log.Error("failed to add cart line", zap.Error(err))
		return nil, err
	}

	log.Debug("cart line merged", zap.String("cart_id", c.ID))

	return s.repo.FindCart(ctx, ident)
}

// SetQuantity overwrites the quantity of the first line matching the product
// id, regardless of variation. Non-positive quantities remove the product.
func (s *service) SetQuantity(ctx context.Context, ident identity.Identity, productID string, quantity int) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	if productID == "" {
		return ErrMissingProduct
	}

	c, err := s.repo.FindCart(ctx, ident)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.repo.RemoveProduct(ctx, c.ID, productID)
	}

	return s.repo.SetQuantity(ctx, c.ID, productID, quantity)
}

// RemoveItem removes every variation of the product from the cart.
func (s *service) RemoveItem(ctx context.Context, ident identity.Identity, productID string) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	if productID == "" {
		return ErrMissingProduct
	}

	c, err := s.repo.FindCart(ctx, ident)
	if err != nil {
		return err
	}

	return s.repo.RemoveProduct(ctx, c.ID, productID)
}

// Clear empties the cart's lines but keeps the cart record. A missing cart
// is already empty.
func (s *service) Clear(ctx context.Context, ident identity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}

	c, err := s.repo.FindCart(ctx, ident)
	if errors.Is(err, ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.repo.ClearLines(ctx, c.ID)
}
