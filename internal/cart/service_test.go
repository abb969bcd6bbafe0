package cart

import (
	"context"
	"errors"
	"testing"

	"shopfront-be/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindCart(ctx context.Context, ident identity.Identity) (*Cart, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) CreateCart(ctx context.Context, ident identity.Identity) (*Cart, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) AddLine(ctx context.Context, cartID string, line Line) error {
	args := m.Called(ctx, cartID, line)
	return args.Error(0)
}

func (m *MockRepository) SetQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	args := m.Called(ctx, cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveProduct(ctx context.Context, cartID, productID string) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *MockRepository) ClearLines(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

var userIdent = identity.FromUser("user-1")

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		existing := &Cart{ID: "cart-1", Items: []Line{{ProductID: "p1", Quantity: 1}}}
		repo.On("FindCart", ctx, userIdent).Return(existing, nil)

		c, err := svc.Get(ctx, userIdent)
		assert.NoError(t, err)
		assert.Equal(t, existing, c)
		repo.AssertExpectations(t)
	})

	t.Run("Creates empty cart on first access", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		created := &Cart{ID: "cart-2", Items: []Line{}}
		repo.On("FindCart", ctx, userIdent).Return(nil, ErrCartNotFound)
		repo.On("CreateCart", ctx, userIdent).Return(created, nil)

		c, err := svc.Get(ctx, userIdent)
		assert.NoError(t, err)
		assert.Equal(t, created, c)
		assert.Empty(t, c.Items)
		repo.AssertExpectations(t)
	})

	t.Run("Identity required", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Get(ctx, identity.Identity{})
		assert.ErrorIs(t, err, identity.ErrIdentityRequired)
		repo.AssertNotCalled(t, "FindCart")
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	line := Line{ProductID: "p1", Quantity: 2, UnitPrice: 50.0}

	t.Run("Merges into existing cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		cart := &Cart{ID: "cart-1"}
		merged := &Cart{ID: "cart-1", Items: []Line{{ProductID: "p1", Quantity: 4, UnitPrice: 50.0}}}

		repo.On("FindCart", ctx, userIdent).Return(cart, nil).Once()
		repo.On("AddLine", ctx, "cart-1", line).Return(nil)
		repo.On("FindCart", ctx, userIdent).Return(merged, nil).Once()

		c, err := svc.AddItem(ctx, userIdent, line)
		assert.NoError(t, err)
		assert.Len(t, c.Items, 1)
		assert.Equal(t, 4, c.Items[0].Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("Creates cart first when missing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		created := &Cart{ID: "cart-2", Items: []Line{}}
		repo.On("FindCart", ctx, userIdent).Return(nil, ErrCartNotFound).Once()
		repo.On("CreateCart", ctx, userIdent).Return(created, nil)
		repo.On("AddLine", ctx, "cart-2", line).Return(nil)
		repo.On("FindCart", ctx, userIdent).
			Return(&Cart{ID: "cart-2", Items: []Line{line}}, nil).Once()

		c, err := svc.AddItem(ctx, userIdent, line)
		assert.NoError(t, err)
		assert.Len(t, c.Items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects non-positive quantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, userIdent, Line{ProductID: "p1", Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "AddLine")
	})

	t.Run("Rejects missing product id", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, userIdent, Line{Quantity: 1})
		assert.ErrorIs(t, err, ErrMissingProduct)
	})

	t.Run("Identity required", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, identity.Identity{}, line)
		assert.ErrorIs(t, err, identity.ErrIdentityRequired)
	})

	t.Run("Repository failure surfaces", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(&Cart{ID: "cart-1"}, nil)
		repo.On("AddLine", ctx, "cart-1", line).Return(errors.New("db down"))

		_, err := svc.AddItem(ctx, userIdent, line)
		assert.Error(t, err)
	})
}

func TestService_SetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Overwrites quantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(&Cart{ID: "cart-1"}, nil)
		repo.On("SetQuantity", ctx, "cart-1", "p1", 5).Return(nil)

		err := svc.SetQuantity(ctx, userIdent, "p1", 5)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Zero quantity removes the product", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(&Cart{ID: "cart-1"}, nil)
		repo.On("RemoveProduct", ctx, "cart-1", "p1").Return(nil)

		err := svc.SetQuantity(ctx, userIdent, "p1", 0)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "SetQuantity")
	})

	t.Run("Missing cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(nil, ErrCartNotFound)

		err := svc.SetQuantity(ctx, userIdent, "p1", 5)
		assert.ErrorIs(t, err, ErrCartNotFound)
	})

	t.Run("Identity required", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.SetQuantity(ctx, identity.Identity{}, "p1", 5)
		assert.ErrorIs(t, err, identity.ErrIdentityRequired)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes all variations", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(&Cart{ID: "cart-1"}, nil)
		repo.On("RemoveProduct", ctx, "cart-1", "p1").Return(nil)

		err := svc.RemoveItem(ctx, userIdent, "p1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(nil, ErrCartNotFound)

		err := svc.RemoveItem(ctx, userIdent, "p1")
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears lines, keeps cart", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(&Cart{ID: "cart-1"}, nil)
		repo.On("ClearLines", ctx, "cart-1").Return(nil)

		err := svc.Clear(ctx, userIdent)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing cart is already empty", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindCart", ctx, userIdent).Return(nil, ErrCartNotFound)

		err := svc.Clear(ctx, userIdent)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "ClearLines")
	})
}
