package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookhaven/bookstore/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookstore/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookInput carries the fields needed to add a book to the catalog.
type BookInput struct {
	Title       string
	Author      string
	Genre       string
	Price       decimal.Decimal
	Description string
}

// Service wraps the catalog repository with validation and coded errors.
type Service struct {
	repo *Repository
}

// NewService builds a catalog service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{repo: repo}, nil
}

// Search returns every book whose title or author contains the query,
// case-insensitively. An unmatched query yields an empty slice, not an error.
func (s *Service) Search(ctx context.Context, query string) ([]models.Book, error) {
	books, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "search catalog")
	}
	return books, nil
}

// Get loads one book by id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no book with id %d", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load book")
	}
	return book, nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list catalog")
	}
	return books, nil
}

// Import seeds the catalog. It refuses to run against a non-empty catalog so
// the seeder stays safe to re-run.
func (s *Service) Import(ctx context.Context, inputs []BookInput) (int, error) {
	if len(inputs) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "no books to import")
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "count catalog")
	}
	if count > 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "catalog already seeded")
	}

	books := make([]models.Book, 0, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input.Title) == "" {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "book title is required")
		}
		if input.Price.IsNegative() {
			return 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("book %q has a negative price", input.Title))
		}
		books = append(books, models.Book{
			Title:       input.Title,
			Author:      input.Author,
			Genre:       input.Genre,
			Price:       input.Price,
			Description: input.Description,
		})
	}

	if err := s.repo.CreateBatch(ctx, books); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "insert books")
	}
	return len(books), nil
}
