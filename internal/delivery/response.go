package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OussamaERrafif/storefront/internal/domain"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrInvalidPrice) || errors.Is(err, domain.ErrInvalidCategoryRef) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrAttachmentUnreadable) {
		return http.StatusUnprocessableEntity
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		if storeErr.Status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
