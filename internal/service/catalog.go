package service

import (
	"context"

	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/sequence"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.Price < 0 {
		return nil, ErrValidation
	}

	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) ReplaceProduct(ctx context.Context, req models.Product, id string) (*models.Product, error) {
	if req.Price < 0 {
		return nil, ErrValidation
	}

	return s.Repo.ReplaceProduct(ctx, req, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.Repo.DeleteProduct(ctx, id)
}

// BackfillCodes assigns a fresh code to every product missing one and
// reports how many rows were touched. Rows are visited in the store's
// default order, so backfilled codes need not follow creation order.
func (s *CatalogService) BackfillCodes(ctx context.Context) (int, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.backfill_codes")

	missing, err := s.Repo.ProductsWithoutCode(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, p := range missing {
		code, err := s.Repo.Seq.Next(ctx, sequence.ProductCode)
		if err != nil {
			return updated, err
		}
		if err := s.Repo.SetProductCode(ctx, p.ID, code); err != nil {
			return updated, err
		}
		updated++
	}

	if updated > 0 {
		l.Info("backfill_done", "updated", updated)
	}
	return updated, nil
}
