package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OussamaERrafif/storefront/internal/attachment"
	"github.com/OussamaERrafif/storefront/internal/domain"
	"github.com/OussamaERrafif/storefront/internal/validation"
)

// fakeStore records delegated calls and plays back canned results.
type fakeStore struct {
	products   []domain.Product
	categories []domain.Category
	failWith   error

	createCalls int
	updateCalls int
	deleteCalls int

	lastDraft domain.ProductDraft
	lastAtt   domain.AttachmentPayload
	lastID    int64
}

func (s *fakeStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.products, nil
}

func (s *fakeStore) CreateProduct(ctx context.Context, draft domain.ProductDraft, att domain.AttachmentPayload) (*domain.Product, error) {
	s.createCalls++
	s.lastDraft = draft
	s.captureAttachment(att)
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &domain.Product{
		ID:          101,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
		ImageURL:    att.ImageURL,
	}, nil
}

func (s *fakeStore) UpdateProduct(ctx context.Context, id int64, draft domain.ProductDraft, att domain.AttachmentPayload) (*domain.Product, error) {
	s.updateCalls++
	s.lastID = id
	s.lastDraft = draft
	s.captureAttachment(att)
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &domain.Product{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		CategoryID:  draft.CategoryID,
		ImageURL:    att.ImageURL,
	}, nil
}

func (s *fakeStore) DeleteProduct(ctx context.Context, id int64) error {
	s.deleteCalls++
	s.lastID = id
	return s.failWith
}

func (s *fakeStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *fakeStore) CreateCategory(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &domain.Category{ID: 7, Name: draft.Name}, nil
}

func (s *fakeStore) DeleteCategory(ctx context.Context, id int64) error {
	s.deleteCalls++
	s.lastID = id
	return s.failWith
}

func (s *fakeStore) captureAttachment(att domain.AttachmentPayload) {
	s.lastAtt = att
	if att.File != nil {
		att.File.Close()
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validProductInput() validation.ProductInput {
	return validation.ProductInput{
		Name:        "Keyboard",
		Description: "Mechanical",
		Price:       "49.99",
		CategoryID:  "1",
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("NormalizesAndDelegates", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "Peripherals"}}}
		uc := NewProductUseCase(store, testLogger())

		in := validProductInput()
		in.Price = "3.999"

		created, err := uc.CreateProduct(context.Background(), in, attachment.None())

		require.NoError(t, err)
		assert.Equal(t, 1, store.createCalls)
		assert.Equal(t, "Keyboard", store.lastDraft.Name)
		assert.Equal(t, "3.99", store.lastDraft.Price.StringFixed(2))
		assert.Equal(t, int64(101), created.ID)
	})

	t.Run("RejectsMissingNameBeforeTouchingStore", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "Peripherals"}}}
		uc := NewProductUseCase(store, testLogger())

		in := validProductInput()
		in.Name = ""

		_, err := uc.CreateProduct(context.Background(), in, attachment.None())

		var fieldErr *domain.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "name", fieldErr.Field)
		assert.Zero(t, store.createCalls)
	})

	t.Run("RejectsUnknownCategory", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 2, Name: "Other"}}}
		uc := NewProductUseCase(store, testLogger())

		_, err := uc.CreateProduct(context.Background(), validProductInput(), attachment.None())

		assert.ErrorIs(t, err, domain.ErrInvalidCategoryRef)
		assert.Zero(t, store.createCalls)
	})

	t.Run("UploadsStagedBinary", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "Peripherals"}}}
		uc := NewProductUseCase(store, testLogger())

		img := attachment.None()
		defer img.Release()
		require.NoError(t, img.Stage("photo.png", strings.NewReader("bytes")))

		_, err := uc.CreateProduct(context.Background(), validProductInput(), img)

		require.NoError(t, err)
		assert.Equal(t, "photo.png", store.lastAtt.Filename)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("PersistedImageURLSurvivesUntouched", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "Peripherals"}}}
		uc := NewProductUseCase(store, testLogger())

		img := attachment.Persisted("/media/products/5.png")
		updated, err := uc.UpdateProduct(context.Background(), 5, validProductInput(), img)

		require.NoError(t, err)
		assert.Equal(t, int64(5), store.lastID)
		assert.Nil(t, store.lastAtt.File)
		assert.Equal(t, "/media/products/5.png", store.lastAtt.ImageURL)
		assert.Equal(t, "/media/products/5.png", updated.ImageURL)
	})

	t.Run("StoreFailureSurfacesVerbatim", func(t *testing.T) {
		storeErr := &domain.StoreError{Op: "update product", Status: 500, Err: assert.AnError}
		store := &fakeStore{
			categories: []domain.Category{{ID: 1, Name: "Peripherals"}},
			failWith:   storeErr,
		}
		uc := NewProductUseCase(store, testLogger())

		_, err := uc.UpdateProduct(context.Background(), 5, validProductInput(), attachment.None())

		var got *domain.StoreError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, 500, got.Status)
	})

	t.Run("InvalidIDRejected", func(t *testing.T) {
		store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "Peripherals"}}}
		uc := NewProductUseCase(store, testLogger())

		_, err := uc.UpdateProduct(context.Background(), 0, validProductInput(), attachment.None())

		assert.Error(t, err)
		assert.Zero(t, store.updateCalls)
	})
}

func TestDeleteProduct(t *testing.T) {
	store := &fakeStore{}
	uc := NewProductUseCase(store, testLogger())

	require.NoError(t, uc.DeleteProduct(context.Background(), 9))
	assert.Equal(t, int64(9), store.lastID)

	assert.Error(t, uc.DeleteProduct(context.Background(), -1))
}

func TestCreateCategory(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		store := &fakeStore{}
		uc := NewCategoryUseCase(store, testLogger())

		created, err := uc.CreateCategory(context.Background(), validation.CategoryInput{Name: "Books"})

		require.NoError(t, err)
		assert.Equal(t, "Books", created.Name)
	})

	t.Run("BlankNameRejected", func(t *testing.T) {
		store := &fakeStore{}
		uc := NewCategoryUseCase(store, testLogger())

		_, err := uc.CreateCategory(context.Background(), validation.CategoryInput{Name: " "})

		var fieldErr *domain.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "name", fieldErr.Field)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("ReferencedCategoryStillDeletes", func(t *testing.T) {
		// Products referencing the category do not block the delete; the
		// persistence service owns that decision.
		store := &fakeStore{
			categories: []domain.Category{{ID: 1, Name: "Peripherals"}},
			products: []domain.Product{
				{ID: 3, Name: "Keyboard", Price: decimal.New(4999, -2), CategoryID: 1},
			},
		}
		uc := NewCategoryUseCase(store, testLogger())

		err := uc.DeleteCategory(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), store.lastID)
	})

	t.Run("InvalidIDRejected", func(t *testing.T) {
		store := &fakeStore{}
		uc := NewCategoryUseCase(store, testLogger())

		assert.Error(t, uc.DeleteCategory(context.Background(), 0))
		assert.Zero(t, store.deleteCalls)
	})
}
