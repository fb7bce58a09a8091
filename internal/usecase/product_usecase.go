package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/internal/attachment"
	"github.com/OussamaERrafif/storefront/internal/domain"
	"github.com/OussamaERrafif/storefront/internal/validation"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in validation.ProductInput, img *attachment.Image) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in validation.ProductInput, img *attachment.Image) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// productUseCase is the product side of the catalog facade. It holds no
// cache of its own: every read goes to the store, and a failed mutation
// leaves nothing half-applied locally.
type productUseCase struct {
	store domain.CatalogStore
	log   *logrus.Logger
}

func NewProductUseCase(store domain.CatalogStore, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		store: store,
		log:   logger,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	uc.log.Info("Use Case: Attempting to list all products")
	products, err := uc.store.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, in validation.ProductInput, img *attachment.Image) (*domain.Product, error) {
	draft, att, err := uc.prepare(ctx, in, img)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", draft.Name)
	created, err := uc.store.CreateProduct(ctx, draft, att)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to create product '%s': %v", draft.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id int64, in validation.ProductInput, img *attachment.Image) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid product ID: %d", id)
		return nil, errors.New("invalid product ID for update")
	}

	draft, att, err := uc.prepare(ctx, in, img)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting full-record update for product ID %d", id)
	updated, err := uc.store.UpdateProduct(ctx, id, draft, att)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to update product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", updated.ID)
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid product ID: %d", id)
		return errors.New("invalid product ID for delete")
	}

	uc.log.Infof("Use Case: Attempting to delete product ID %d", id)
	if err := uc.store.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Store failed to delete product ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}

// prepare runs the save-time pipeline shared by create and update: validate
// the raw input, confirm the category reference resolves to an existing
// category, and resolve the attachment state into a payload.
func (uc *productUseCase) prepare(ctx context.Context, in validation.ProductInput, img *attachment.Image) (domain.ProductDraft, domain.AttachmentPayload, error) {
	draft, err := validation.Product(in)
	if err != nil {
		uc.log.Warnf("Use Case: Product input rejected: %v", err)
		return domain.ProductDraft{}, domain.AttachmentPayload{}, err
	}

	if err := uc.checkCategoryExists(ctx, draft.CategoryID); err != nil {
		return domain.ProductDraft{}, domain.AttachmentPayload{}, err
	}

	if img == nil {
		img = attachment.None()
	}
	att, err := img.Resolve()
	if err != nil {
		uc.log.Errorf("Use Case: Failed to resolve attachment for product '%s': %v", draft.Name, err)
		return domain.ProductDraft{}, domain.AttachmentPayload{}, err
	}
	return draft, att, nil
}

func (uc *productUseCase) checkCategoryExists(ctx context.Context, categoryID int64) error {
	categories, err := uc.store.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to list categories for reference check: %v", err)
		return err
	}
	for _, c := range categories {
		if c.ID == categoryID {
			return nil
		}
	}
	uc.log.Warnf("Use Case: Category ID %d not found during product save", categoryID)
	return fmt.Errorf("category with id %d does not exist: %w", categoryID, domain.ErrInvalidCategoryRef)
}
