// Package validation turns raw form input into well-formed catalog entities.
// All functions are pure: no state, no side effects, safe for concurrent use.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/OussamaERrafif/storefront/internal/domain"
)

// ProductInput carries the raw string values of a product form, exactly as
// the browser submitted them.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  string
}

// CategoryInput carries the raw string values of a category form.
type CategoryInput struct {
	Name string
}

// Product validates and normalizes raw product input. The price is truncated
// (rounded toward zero) to two decimals, so "3" becomes 3.00 and "3.999"
// becomes 3.99. Category existence is the facade's concern; only the shape of
// the reference is checked here.
func Product(in ProductInput) (domain.ProductDraft, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ProductDraft{}, &domain.FieldError{Field: "name"}
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.ProductDraft{}, &domain.FieldError{Field: "description"}
	}

	rawPrice := strings.TrimSpace(in.Price)
	if rawPrice == "" {
		return domain.ProductDraft{}, &domain.FieldError{Field: "price"}
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return domain.ProductDraft{}, fmt.Errorf("price %q: %w", rawPrice, domain.ErrInvalidPrice)
	}
	if price.IsNegative() {
		return domain.ProductDraft{}, fmt.Errorf("price %q: %w", rawPrice, domain.ErrInvalidPrice)
	}
	price = price.Truncate(2)

	rawCategoryID := strings.TrimSpace(in.CategoryID)
	if rawCategoryID == "" {
		return domain.ProductDraft{}, &domain.FieldError{Field: "category_id"}
	}
	categoryID, err := strconv.ParseInt(rawCategoryID, 10, 64)
	if err != nil || categoryID <= 0 {
		return domain.ProductDraft{}, fmt.Errorf("category_id %q: %w", rawCategoryID, domain.ErrInvalidCategoryRef)
	}

	return domain.ProductDraft{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
	}, nil
}

// Category validates raw category input. Name uniqueness is not enforced
// here; a duplicate is the persistence service's call to reject.
func Category(in CategoryInput) (domain.CategoryDraft, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.CategoryDraft{}, &domain.FieldError{Field: "name"}
	}
	return domain.CategoryDraft{Name: name}, nil
}
