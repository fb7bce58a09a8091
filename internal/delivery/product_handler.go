package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/internal/attachment"
	"github.com/OussamaERrafif/storefront/internal/query"
	"github.com/OussamaERrafif/storefront/internal/usecase"
	"github.com/OussamaERrafif/storefront/internal/validation"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts fetches the full collection from the store and applies the
// query criteria server-side. The list shown after a mutation is always a
// fresh snapshot, never a locally patched one.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var categoryID int64
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		parsed, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil || parsed <= 0 {
			h.log.Warnf("Invalid category_id filter parameter: %s", categoryIDStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid category_id format")
			return
		}
		categoryID = parsed
	}
	search := c.Query("search")
	sortKey := c.DefaultQuery("sort", query.SortByName)

	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}

	filtered := query.Apply(products, search, categoryID, sortKey)
	h.log.Infof("Retrieved %d products, %d after filtering", len(products), len(filtered))
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", filtered)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	in := productInputFromForm(c)
	img, err := h.imageFromForm(c)
	if err != nil {
		h.log.Errorf("Failed to stage product image: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid image upload: "+err.Error())
		return
	}
	defer img.Release()

	created, err := h.useCase.CreateProduct(c.Request.Context(), in, img)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", in.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	in := productInputFromForm(c)
	img, err := h.imageFromForm(c)
	if err != nil {
		h.log.Errorf("Failed to stage product image for update ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid image upload: "+err.Error())
		return
	}
	defer img.Release()

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), id, in, img)
	if err != nil {
		h.log.Errorf("Failed to update product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	h.log.Infof("Product updated successfully: ID %d", updated.ID)
	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for delete: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Errorf("Failed to delete product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	h.log.Infof("Product deleted successfully: ID %d", id)
	SuccessResponse(c, http.StatusOK, "Product deleted successfully", gin.H{"id": id})
}

// productInputFromForm lifts the multipart form fields as raw strings; the
// validation package owns all interpretation of them.
func productInputFromForm(c *gin.Context) validation.ProductInput {
	return validation.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		CategoryID:  c.PostForm("category_id"),
	}
}

// imageFromForm reconstructs the attachment state the browser describes: the
// image_url field is the persisted baseline, and an uploaded file part stages
// a new binary on top of it.
func (h *ProductHandler) imageFromForm(c *gin.Context) (*attachment.Image, error) {
	img := attachment.Persisted(c.PostForm("image_url"))

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return img, nil
		}
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := img.Stage(fileHeader.Filename, f); err != nil {
		return nil, err
	}
	return img, nil
}
