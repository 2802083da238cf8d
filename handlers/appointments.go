package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"autoshop/models"
	"autoshop/services/scheduling"
	"autoshop/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAppointment admits and persists a new shop booking. The end time
// may be omitted; it defaults to start plus the service type's estimated
// duration.
func (h *ScheduleHandler) CreateAppointment(c *gin.Context) {
	var input struct {
		Start       time.Time  `json:"start" binding:"required"`
		End         *time.Time `json:"end"`
		ServiceType string     `json:"serviceType"`
		VehicleID   string     `json:"vehicleId"`
		Note        string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	end := input.End
	if end == nil {
		e := input.Start.Add(models.ServiceDuration(input.ServiceType))
		end = &e
	}

	candidate := models.Interval{
		ID:          uuid.New().String(),
		OwnerKind:   models.OwnerShop,
		Start:       input.Start,
		End:         end,
		Status:      models.IntervalActive,
		ServiceType: input.ServiceType,
		VehicleID:   input.VehicleID,
		Note:        input.Note,
	}

	decision, err := h.Engine.AdmitBooking(c.Request.Context(), candidate, "", func(ctx context.Context) error {
		return h.Repo.Create(ctx, candidate)
	})
	if err != nil {
		writeAdmissionError(c, h.Logger, "failed to create appointment", err)
		return
	}
	if !decision.Accepted {
		c.JSON(http.StatusConflict, decision)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"decision": decision, "appointment": candidate})
}

// RescheduleAppointment moves an existing booking to a new window. The
// booking's own record is excluded from the conflict check.
func (h *ScheduleHandler) RescheduleAppointment(c *gin.Context) {
	id := c.Param("id")
	var input struct {
		Start       time.Time  `json:"start" binding:"required"`
		End         *time.Time `json:"end"`
		ServiceType string     `json:"serviceType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
		return
	}

	serviceType := input.ServiceType
	if serviceType == "" {
		serviceType = existing.ServiceType
	}
	end := input.End
	if end == nil {
		e := input.Start.Add(models.ServiceDuration(serviceType))
		end = &e
	}

	candidate := *existing
	candidate.Start = input.Start
	candidate.End = end
	candidate.ServiceType = serviceType

	decision, err := h.Engine.AdmitBooking(c.Request.Context(), candidate, id, func(ctx context.Context) error {
		return h.Repo.Reschedule(ctx, id, input.Start, *end)
	})
	if err != nil {
		writeAdmissionError(c, h.Logger, "failed to reschedule appointment", err)
		return
	}
	if !decision.Accepted {
		c.JSON(http.StatusConflict, decision)
		return
	}

	c.JSON(http.StatusOK, gin.H{"decision": decision, "appointment": candidate})
}

// CancelAppointment flips the booking to cancelled; the slot becomes
// bookable again.
func (h *ScheduleHandler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Cancel(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to cancel appointment", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.IntervalCancelled})
}

func writeAdmissionError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	if errors.Is(err, scheduling.ErrInvalidInput) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	logger.Error(msg, zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, msg, err.Error())
}
