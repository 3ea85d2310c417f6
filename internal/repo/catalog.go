package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/sequence"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every product ordered ascending by code. Rows with
// an empty code sort wherever the store puts them, which is not guaranteed
// to be last.
func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct persists prod, minting a code first when none was supplied.
// If the code sequence fails nothing is written.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if prod.ID == "" {
		prod.ID = uuid.NewString()
	}
	if prod.Code == "" {
		code, err := r.Seq.Next(ctx, sequence.ProductCode)
		if err != nil {
			return nil, err
		}
		prod.Code = code
	}
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// ReplaceProduct overwrites every mutable field of the stored row with the
// values in req. The one exception is code: an empty code in req keeps the
// existing one, so an edit form that omits it cannot strip a product of
// its code.
func (r *GormRepo) ReplaceProduct(ctx context.Context, req models.Product, id string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}

	prod.Name = req.Name
	prod.Stock = req.Stock
	prod.Price = req.Price
	prod.ImageURL = req.ImageURL
	if req.Code != "" {
		prod.Code = req.Code
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ProductsWithoutCode enumerates rows missing a code in the store's default
// order, which need not match creation order.
func (r *GormRepo) ProductsWithoutCode(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Where("code IS NULL OR code = ''").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SetProductCode(ctx context.Context, id, code string) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("code", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
