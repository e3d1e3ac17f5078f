package api

import (
	"errors"
	"net/http"

	reqdto "clinic-booking-api/internal/handler/dto/request"
	resdto "clinic-booking-api/internal/handler/dto/response"
	"clinic-booking-api/internal/usecase/commands"
	"clinic-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	voucherQueries  queries.VoucherQueries
	voucherCommands commands.VoucherCommands
}

func NewVoucherHandler(voucherQueries queries.VoucherQueries, voucherCommands commands.VoucherCommands) *VoucherHandler {
	return &VoucherHandler{
		voucherQueries:  voucherQueries,
		voucherCommands: voucherCommands,
	}
}

// @Summary Validate a voucher code
// @Description Check whether a voucher applies to a purchase amount and compute the discount. Has no side effects.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateVoucherRequest true "Validation request"
// @Success 200 {object} resdto.ValidateVoucherResponse
// @Failure 400 {object} map[string]string
// @Router /vouchers/validate [post]
func (h *VoucherHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.voucherQueries.Validate(c.Request.Context(), req.Code, *req.PurchaseAmount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// @Summary List currently redeemable vouchers
// @Tags vouchers
// @Produce json
// @Success 200 {array} resdto.VoucherResponse
// @Router /vouchers [get]
func (h *VoucherHandler) ListActive(c *gin.Context) {
	views, err := h.voucherQueries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resps := make([]*resdto.VoucherResponse, 0, len(views))
	for _, view := range views {
		resps = append(resps, resdto.FromVoucherView(view))
	}
	c.JSON(http.StatusOK, resps)
}

// @Summary Get a voucher by code
// @Tags vouchers
// @Produce json
// @Param code path string true "Voucher code"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} map[string]string
// @Router /vouchers/{code} [get]
func (h *VoucherHandler) GetByCode(c *gin.Context) {
	view, err := h.voucherQueries.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, queries.ErrVoucherNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary List vouchers (paginated)
// @Tags admin-vouchers
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.VoucherPageResponse
// @Router /admin/vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	var q reqdto.ListVouchersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	page, err := h.voucherQueries.ListPage(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromVoucherPage(page))
}

// @Summary Create a voucher
// @Tags admin-vouchers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateVoucherRequest true "Voucher definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	var req reqdto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.voucherCommands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateCode):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Voucher code already exists",
			})
		case errors.Is(err, commands.ErrInvalidVoucherInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid voucher data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update a voucher
// @Tags admin-vouchers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Param request body reqdto.UpdateVoucherRequest true "Fields to change"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/vouchers/{id} [patch]
func (h *VoucherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID",
		})
		return
	}

	var req reqdto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.voucherCommands.Update(c.Request.Context(), id, req.ToParams()); err != nil {
		switch {
		case errors.Is(err, commands.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		case errors.Is(err, commands.ErrInvalidVoucherInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid voucher data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete a voucher
// @Tags admin-vouchers
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/vouchers/{id} [delete]
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID",
		})
		return
	}

	if err := h.voucherCommands.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrVoucherNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
