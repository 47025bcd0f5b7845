package repository

import (
	"context"

	"github.com/farmvale/cryptofarm/internal/domain"
)

// Catalog defines the read-only interface to the static item catalog
type Catalog interface {
	GetCatalogItem(ctx context.Context, ref string) (*domain.CatalogItem, error)
	ListCatalogItems(ctx context.Context) ([]domain.CatalogItem, error)
}
