package domain

import (
	"context"
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
	ImageURL    string
}

// ProductDraft is a validated, normalized product ready for persistence.
// It is only produced by the validation package.
type ProductDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
}

// AttachmentPayload is the save-time resolution of a product's image state.
// File is non-nil only when a newly staged binary must be uploaded; ImageURL
// carries the previously persisted reference, or "" when there is none or an
// explicit removal was requested.
type AttachmentPayload struct {
	File     io.ReadCloser
	Filename string
	ImageURL string
}

type productJSON struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	CategoryID  int64  `json:"category_id"`
	ImageURL    string `json:"image_url"`
}

// MarshalJSON serializes the price as a fixed two-decimal string so the wire
// never carries a binary float.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int64           `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		CategoryID  int64           `json:"category_id"`
		ImageURL    string          `json:"image_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Description = raw.Description
	p.Price = raw.Price
	p.CategoryID = raw.CategoryID
	p.ImageURL = raw.ImageURL
	return nil
}

// CatalogStore is the contract of the remote persistence collaborator.
// Every call is single-shot: no retries, exactly one result or error.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, draft ProductDraft, att AttachmentPayload) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, draft ProductDraft, att AttachmentPayload) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, draft CategoryDraft) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
