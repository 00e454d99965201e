package http

import (
	"errors"
	"net/http"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, auth.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "admin role required"})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: "cart is empty"})
	case domain.IsStore(err):
		c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{Error: "storage unavailable"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, field, msg string) {
	writeError(c, domain.NewValidationError(field, msg))
}
