package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/services/booking"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/utils"
)

// BookingHandler exposes the availability and appointment endpoints.
type BookingHandler struct {
	Availability booking.AvailabilityService
	Appointments booking.AppointmentService
	Logger       *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(avail booking.AvailabilityService, appts booking.AppointmentService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Availability: avail,
		Appointments: appts,
		Logger:       logger,
	}
}

// Check handles POST /check.
func (h *BookingHandler) Check(c *gin.Context) {
	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input")
		return
	}

	result, err := h.Availability.Check(c.Request.Context(), req.Start, req.End)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRange) {
			utils.JSONError(c, http.StatusBadRequest, "invalid_range")
			return
		}
		h.Logger.Error("availability check failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create handles POST /create.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input")
		return
	}

	eventID, err := h.Appointments.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoToken):
			utils.JSONError(c, http.StatusBadRequest, "No reservation token")
		case errors.Is(err, booking.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusConflict, models.ReasonDoubleBooking)
		default:
			h.Logger.Error("appointment creation failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to create appointment")
		}
		return
	}

	c.JSON(http.StatusOK, models.CreateResponse{Success: true, EventID: eventID})
}

// Update handles POST /update.
func (h *BookingHandler) Update(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input")
		return
	}

	event, err := h.Appointments.Update(c.Request.Context(), req.EventID, req.Start, req.End)
	if err != nil {
		h.Logger.Error("appointment update failed", zap.String("eventId", req.EventID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, models.UpdateResponse{Success: true, Event: event})
}

// Delete handles POST /delete.
func (h *BookingHandler) Delete(c *gin.Context) {
	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input")
		return
	}

	if err := h.Appointments.Delete(c.Request.Context(), req.EventID); err != nil {
		h.Logger.Error("appointment deletion failed", zap.String("eventId", req.EventID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete appointment")
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true})
}
