package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/OussamaERrafif/storefront/internal/domain"
	"github.com/OussamaERrafif/storefront/internal/usecase"
	"github.com/OussamaERrafif/storefront/internal/validation"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.CreateCategory(c.Request.Context(), validation.CategoryInput{Name: body.Name})
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", body.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create category: "+err.Error())
		return
	}

	h.log.Infof("Category created successfully: ID %d, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, "Category created successfully", created)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve categories: "+err.Error())
		return
	}

	h.log.Infof("Retrieved %d categories", len(categories))
	if len(categories) == 0 {
		SuccessResponse(c, http.StatusOK, "No categories found", []domain.Category{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid category ID parameter for delete: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		h.log.Errorf("Failed to delete category ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete category: "+err.Error())
		return
	}

	h.log.Infof("Category deleted successfully: ID %d", id)
	SuccessResponse(c, http.StatusOK, "Category deleted successfully", gin.H{"id": id})
}
