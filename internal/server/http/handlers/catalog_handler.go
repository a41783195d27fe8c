package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restomart/internal/server/http/dto"
)

// CatalogHandler serves the orderable items.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	catalog, err := h.facade.Catalog(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CatalogResponse{
		Menu:    toCatalogItems(catalog.Menu),
		Boisson: toCatalogItems(catalog.Boisson),
	})
}
