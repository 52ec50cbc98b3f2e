package catalog

import (
	"context"
	"strings"

	"github.com/bookhaven/bookstore/internal/repo"
	"github.com/bookhaven/bookstore/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction. The sqlite
// pool holds a single connection, so reads issued during a transaction must
// go through the transaction handle or they wait on it forever.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

// Create inserts a single book and returns the persisted model.
func (r *Repository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.DB(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// CreateBatch inserts the provided books in one statement.
func (r *Repository) CreateBatch(ctx context.Context, books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&books).Error
}

// FindByID loads a book by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := r.DB(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns the full catalog in id order.
func (r *Repository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches the query as a case-insensitive substring of title or
// author. The empty query matches every book.
func (r *Repository) Search(ctx context.Context, query string) ([]models.Book, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var books []models.Book
	err := r.DB(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Count reports the number of books in the catalog.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
