package order

import (
	"context"
	"fmt"

	"shopfront-be/internal/cart"
	"shopfront-be/internal/catalog"
	"shopfront-be/internal/logger"
	"shopfront-be/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInput is the checkout payload: the cart lines to freeze, where to
// ship them, and how.
type CreateInput struct {
	Items          []cart.Line  `json:"items"`
	ShippingInfo   ShippingInfo `json:"shipping_info"`
	ShippingMethod string       `json:"shipping_method"`
}

type Service interface {
	Create(ctx context.Context, userID *string, input CreateInput) (*Order, error)
	Get(ctx context.Context, orderID, requesterID string, isAdmin bool) (*Order, error)
	ListMine(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	engine      pricing.Engine
}

func NewService(repo Repository, catalogRepo catalog.Repository, engine pricing.Engine) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		engine:      engine,
	}
}

// Create freezes the cart lines into an immutable order. Every product must
// resolve in the catalog; a single miss aborts the whole creation and
// nothing is persisted. Monetary totals are computed once here and never
// recomputed.
func (s *service) Create(ctx context.Context, userID *string, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("item_count", len(input.Items)),
	)

	items := make([]Item, 0, len(input.Items))
	priceLines := make([]pricing.Line, 0, len(input.Items))

	for _, line := range input.Items {
		product, err := s.catalogRepo.FindProduct(ctx, line.ProductID)
		if err != nil {
			log.Warn("product lookup failed",
				zap.String("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("resolve product %s: %w", line.ProductID, err)
		}

		items = append(items, Item{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Variation:   line.Variation,
		})
		priceLines = append(priceLines, pricing.Line{
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	quote := s.engine.Quote(priceLines, input.ShippingMethod)

	o := &Order{
		ID:             uuid.New().String(),
		OrderNumber:    GenerateOrderNumber(),
		UserID:         userID,
		Items:          items,
		ShippingInfo:   input.ShippingInfo,
		ShippingMethod: input.ShippingMethod,
		Subtotal:       quote.Subtotal,
		Tax:            quote.Tax,
		ShippingCost:   quote.ShippingCost,
		Total:          quote.Total,
		Status:         StatusPending,
		PaymentStatus:  PaymentPending,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.Total),
	)

	return o, nil
}

// Get returns the order when the requester owns it or is an administrator.
func (s *service) Get(ctx context.Context, orderID, requesterID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if o.UserID == nil || *o.UserID != requesterID {
			return nil, ErrForbidden
		}
	}

	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.ListAll(ctx, status, limit, offset)
}

// UpdateStatus overwrites the order status. Transition legality is not
// checked: any status may follow any status.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}
