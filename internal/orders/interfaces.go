package orders

import (
	"context"

	"github.com/bookhaven/bookstore/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the order ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// BookLoader resolves catalog books for checkout. WithTx must return a loader
// reading through the provided transaction: with sqlite's single-connection
// pool, a read on the main handle during a transaction blocks forever.
type BookLoader interface {
	WithTx(tx *gorm.DB) BookLoader
	FindByID(ctx context.Context, id int64) (*models.Book, error)
}
