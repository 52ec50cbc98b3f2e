package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookhaven/bookstore/internal/cart"
	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns carts into persisted orders and reads back order history.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, lines []cart.Line) (*models.Order, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type service struct {
	tx    txRunner
	repo  Repository
	books BookLoader
	now   func() time.Time
}

// NewService builds the orders service.
func NewService(tx txRunner, repo Repository, books BookLoader) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if books == nil {
		return nil, fmt.Errorf("book loader required")
	}
	return &service{tx: tx, repo: repo, books: books, now: time.Now}, nil
}

// Checkout persists one order with one item row per cart line. The order row
// and every item row commit together or not at all. Prices are re-read from
// the catalog inside the transaction and snapshotted onto the items, so later
// price changes never rewrite history.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, lines []cart.Line) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart contains no items")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity,
				fmt.Sprintf("quantity must be at least 1, got %d", line.Quantity))
		}
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		books := s.books.WithTx(tx)

		order := &models.Order{
			ID:        uuid.New(),
			UserID:    userID,
			OrderDate: s.now().UTC(),
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			book, err := books.FindByID(ctx, line.Book.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound,
						fmt.Sprintf("book %d no longer exists", line.Book.ID))
				}
				return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load book for checkout")
			}

			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				BookID:    book.ID,
				Quantity:  line.Quantity,
				UnitPrice: book.Price,
			})
			total = total.Add(book.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		order.Total = total

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "create order")
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "create order items")
		}

		order.Items = items
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// History returns the user's orders, newest first, items included.
func (s *service) History(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	records, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list orders")
	}
	return records, nil
}
