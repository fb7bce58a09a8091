package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/internal/domain"
)

// catalogHTTPClient talks to the remote persistence service over plain HTTP.
// Products travel as multipart forms because of the image binary; categories
// as JSON. Every call is single-shot: retry and backoff are not this layer's
// concern.
type catalogHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) domain.CatalogStore {
	return &catalogHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *catalogHTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	c.log.Infof("CatalogClient: Requesting product list from URL: %s", url)

	var products []domain.Product
	if err := c.getJSON(ctx, "list products", url, &products); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Retrieved %d products", len(products))
	return products, nil
}

func (c *catalogHTTPClient) CreateProduct(ctx context.Context, draft domain.ProductDraft, att domain.AttachmentPayload) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	c.log.Infof("CatalogClient: Creating product '%s' at URL: %s", draft.Name, url)
	return c.sendProductForm(ctx, "create product", http.MethodPost, url, draft, att)
}

func (c *catalogHTTPClient) UpdateProduct(ctx context.Context, id int64, draft domain.ProductDraft, att domain.AttachmentPayload) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Infof("CatalogClient: Updating product ID %d at URL: %s", id, url)
	return c.sendProductForm(ctx, "update product", http.MethodPut, url, draft, att)
}

func (c *catalogHTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Infof("CatalogClient: Deleting product ID %d", id)
	return c.delete(ctx, "delete product", url)
}

func (c *catalogHTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	url := fmt.Sprintf("%s/categories", c.baseURL)
	c.log.Infof("CatalogClient: Requesting category list from URL: %s", url)

	var categories []domain.Category
	if err := c.getJSON(ctx, "list categories", url, &categories); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Retrieved %d categories", len(categories))
	return categories, nil
}

func (c *catalogHTTPClient) CreateCategory(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
	url := fmt.Sprintf("%s/categories", c.baseURL)
	c.log.Infof("CatalogClient: Creating category '%s'", draft.Name)

	body, err := json.Marshal(map[string]string{"name": draft.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal category: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create category request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var category domain.Category
	if err := c.do("create category", req, &category); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Category created with ID %d", category.ID)
	return &category, nil
}

func (c *catalogHTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/categories/%d", c.baseURL, id)
	c.log.Infof("CatalogClient: Deleting category ID %d", id)
	return c.delete(ctx, "delete category", url)
}

// sendProductForm builds the multipart body shared by create and update:
// the normalized fields, the staged binary when one exists, and the
// image_url field always present so the server sees the removal intent as an
// explicit empty value.
func (c *catalogHTTPClient) sendProductForm(ctx context.Context, op, method, url string, draft domain.ProductDraft, att domain.AttachmentPayload) (*domain.Product, error) {
	if att.File != nil {
		defer att.File.Close()
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"name":        draft.Name,
		"description": draft.Description,
		"price":       draft.Price.StringFixed(2),
		"category_id": strconv.FormatInt(draft.CategoryID, 10),
		"image_url":   att.ImageURL,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %q: %w", name, err)
		}
	}
	if att.File != nil {
		part, err := w.CreateFormFile("image", att.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create image form part: %w", err)
		}
		if _, err := io.Copy(part, att.File); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrAttachmentUnreadable, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var product domain.Product
	if err := c.do(op, req, &product); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Product saved: ID=%d, Name='%s'", product.ID, product.Name)
	return &product, nil
}

func (c *catalogHTTPClient) getJSON(ctx context.Context, op, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(op, req, out)
}

func (c *catalogHTTPClient) delete(ctx context.Context, op, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(op, req, nil)
}

func (c *catalogHTTPClient) do(op string, req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute %s request: %v", op, err)
		return &domain.StoreError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Errorf("CatalogClient: %s failed with status %d. Response body: %s", op, resp.StatusCode, string(bodyBytes))
		return &domain.StoreError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", bytes.TrimSpace(bodyBytes)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode %s response: %v", op, err)
		return &domain.StoreError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
