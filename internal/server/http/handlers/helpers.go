package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/checkout"
	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/server/http/dto"
	"github.com/polkiloo/restomart/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated operator from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	return middleware.Principal(c)
}

// writeError maps domain errors to a status and an operator-facing body.
func writeError(c *gin.Context, err error) {
	var (
		validation *domainErrors.ValidationError
		contact    *domainErrors.ContactRequiredError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{Errors: validation.Messages})
	case errors.As(err, &contact):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: contact.Message})
	case errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrEmptyOrder),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidSettlement):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, checkout.ErrSubmitInProgress):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrCodeGeneration):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: domainErrors.ErrCodeGeneration.Error()})
	case errors.Is(err, domainErrors.ErrSaveFailed):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "introuvable"})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "accès refusé"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "erreur interne, veuillez réessayer"})
	}
}
