package usecase

import (
	"context"
	"fmt"

	"product_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: pRepo,
		log:         logger,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product retrieved successfully for ID %d", id)
	return product, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID != 0 {
		uc.log.Debugf("Use Case: Ignoring client-supplied ID %d on create", product.ID)
	}

	createdProduct, err := uc.productRepo.Create(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product created successfully with ID %d", createdProduct.ID)
	return createdProduct, nil
}

// UpdateProduct overwrites the whole row without reading it first. When the
// write matches no row, an existence check tells a concurrent delete
// (ErrProductNotFound) apart from any other conflict (ErrWriteConflict).
func (uc *productUseCase) UpdateProduct(ctx context.Context, id int, product *domain.Product) error {
	if id != product.ID {
		uc.log.Warnf("Use Case: Update path ID %d does not match body ID %d", id, product.ID)
		return domain.ErrIDMismatch
	}

	res, err := uc.productRepo.Replace(ctx, id, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to replace product ID %d: %v", id, err)
		return err
	}
	if res == domain.ReplaceApplied {
		uc.log.Infof("Use Case: Product updated successfully for ID %d", id)
		return nil
	}

	exists, err := uc.productRepo.Exists(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Existence check failed for product ID %d after unmatched replace: %v", id, err)
		return err
	}
	if !exists {
		uc.log.Warnf("Use Case: Product ID %d not found for update", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrProductNotFound)
	}

	uc.log.Errorf("Use Case: Replace of product ID %d matched no row although the row exists", id)
	return fmt.Errorf("product with id %d: %w", id, domain.ErrWriteConflict)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int) error {
	deleted, err := uc.productRepo.Delete(ctx, id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return err
	}
	if !deleted {
		uc.log.Warnf("Use Case: Product ID %d not found for delete", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrProductNotFound)
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}
