package worker

import (
	"context"
	"fmt"

	"github.com/farmvale/cryptofarm/internal/pricing"
	"github.com/farmvale/cryptofarm/internal/repository"
)

// QuoteRefreshJob keeps the pricing cache warm for every currency the catalog
// references, so trades rarely pay the oracle round trip themselves.
type QuoteRefreshJob struct {
	pricingSvc pricing.Service
	catalog    repository.Catalog
}

// NewQuoteRefreshJob creates a quote refresh job
func NewQuoteRefreshJob(pricingSvc pricing.Service, catalog repository.Catalog) *QuoteRefreshJob {
	return &QuoteRefreshJob{pricingSvc: pricingSvc, catalog: catalog}
}

// Process refreshes quotes for all catalog currencies
func (j *QuoteRefreshJob) Process(ctx context.Context) error {
	items, err := j.catalog.ListCatalogItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list catalog for quote refresh: %w", err)
	}

	seen := make(map[string]struct{})
	codes := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.CurrencyCode]; ok {
			continue
		}
		seen[item.CurrencyCode] = struct{}{}
		codes = append(codes, item.CurrencyCode)
	}

	j.pricingSvc.Refresh(ctx, codes)
	return nil
}
