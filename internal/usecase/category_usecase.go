package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/internal/domain"
	"github.com/OussamaERrafif/storefront/internal/validation"
)

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in validation.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryUseCase struct {
	store domain.CatalogStore
	log   *logrus.Logger
}

func NewCategoryUseCase(store domain.CatalogStore, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		store: store,
		log:   logger,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	uc.log.Info("Use Case: Attempting to list all categories")
	categories, err := uc.store.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, in validation.CategoryInput) (*domain.Category, error) {
	draft, err := validation.Category(in)
	if err != nil {
		uc.log.Warnf("Use Case: Category input rejected: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", draft.Name)
	created, err := uc.store.CreateCategory(ctx, draft)
	if err != nil {
		uc.log.Errorf("Use Case: Store failed to create category '%s': %v", draft.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

// DeleteCategory forwards unconditionally. Products referencing the category
// are not checked here; cleaning up or refusing such deletes is the
// persistence service's decision.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid category ID: %d", id)
		return errors.New("invalid category ID for delete")
	}

	uc.log.Warnf("Use Case: Deleting category ID %d without checking for referencing products", id)
	if err := uc.store.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Store failed to delete category ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}
