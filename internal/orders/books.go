package orders

import (
	"context"

	"github.com/bookhaven/bookstore/internal/catalog"
	"github.com/bookhaven/bookstore/pkg/db/models"
	"gorm.io/gorm"
)

type catalogLoader struct {
	repo *catalog.Repository
}

// NewCatalogLoader adapts the catalog repository into the ledger's book
// loader.
func NewCatalogLoader(repo *catalog.Repository) BookLoader {
	return catalogLoader{repo: repo}
}

func (l catalogLoader) WithTx(tx *gorm.DB) BookLoader {
	if tx == nil {
		return l
	}
	return catalogLoader{repo: l.repo.WithTx(tx)}
}

func (l catalogLoader) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	return l.repo.FindByID(ctx, id)
}
