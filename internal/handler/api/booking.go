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

type BookingHandler struct {
	bookingQueries  queries.BookingQueries
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingQueries queries.BookingQueries, bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{
		bookingQueries:  bookingQueries,
		bookingCommands: bookingCommands,
	}
}

// @Summary Book a service
// @Description Create a booking, optionally applying a voucher code. A voucher that fails validation rejects the whole booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		var rejected *commands.VoucherRejectedError
		switch {
		case errors.As(err, &rejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Voucher cannot be applied",
				"reason": string(rejected.Reason),
			})
		case errors.Is(err, commands.ErrServiceUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Service is not bookable",
			})
		case errors.Is(err, commands.ErrInvalidBookingInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Look up a booking by reference
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference, e.g. BK-20260115-7KQ2MX"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{reference} [get]
func (h *BookingHandler) GetByReference(c *gin.Context) {
	view, err := h.bookingQueries.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings for a customer email
// @Tags admin-bookings
// @Security BearerAuth
// @Produce json
// @Param email query string true "Customer email"
// @Success 200 {array} resdto.BookingResponse
// @Router /admin/bookings [get]
func (h *BookingHandler) ListByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email query parameter is required",
		})
		return
	}

	views, err := h.bookingQueries.ListByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Cancel a booking
// @Tags admin-bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	if err := h.bookingCommands.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
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
