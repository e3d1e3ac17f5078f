package api

import (
	"errors"
	"net/http"

	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalogQueries: catalogQueries}
}

// @Summary List branches
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.BranchResponse
// @Router /branches [get]
func (h *CatalogHandler) ListBranches(c *gin.Context) {
	views, err := h.catalogQueries.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBranchViews(views))
}

// @Summary List services at a branch
// @Tags catalog
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 404 {object} map[string]string
// @Router /branches/{id}/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid branch ID",
		})
		return
	}

	if _, err := h.catalogQueries.GetBranch(c.Request.Context(), branchID); err != nil {
		if errors.Is(err, queries.ErrBranchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Branch not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.catalogQueries.ListServices(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromServiceViews(views))
}

// @Summary Get a service
// @Tags catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid service ID",
		})
		return
	}

	view, err := h.catalogQueries.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}
