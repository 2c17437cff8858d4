package room

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, caps SeatCapacity) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), caps),
	}
}

// ListTimeSlots godoc
// @Summary      List time slots
// @Description  Returns the fixed daily time slots.
// @Tags         rooms
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   TimeSlot
// @Failure      500  {object}  gin.H
// @Router       /slots [get]
func (h *Handler) ListTimeSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Availability godoc
// @Summary      Room availability per slot
// @Description  Returns available rooms grouped by slot and room type for a date (defaults to today).
// @Tags         rooms
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  false  "Date (YYYY-MM-DD)"
// @Success      200   {array}   SlotAvailability
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /availability [get]
func (h *Handler) Availability(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	availability, err := h.service.AvailabilityForDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, availability)
}
