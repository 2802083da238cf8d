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
)

// StartTimer opens a new time-tracking entry for an employee. Rejected
// with 409 and the running entry's id when a timer is already open.
func (h *ScheduleHandler) StartTimer(c *gin.Context) {
	var input struct {
		EmployeeID string     `json:"employeeId" binding:"required"`
		Start      *time.Time `json:"start"`
		Note       string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	start := time.Now().UTC()
	if input.Start != nil {
		start = *input.Start
	}

	candidate := models.Interval{
		ID:        uuid.New().String(),
		OwnerKind: models.OwnerEmployee,
		OwnerID:   input.EmployeeID,
		Start:     start,
		Status:    models.IntervalActive,
		Note:      input.Note,
	}

	decision, err := h.Engine.AdmitTimerStart(c.Request.Context(), input.EmployeeID, candidate, func(ctx context.Context) error {
		return h.Repo.Create(ctx, candidate)
	})
	if err != nil {
		writeAdmissionError(c, h.Logger, "failed to start timer", err)
		return
	}
	if !decision.Accepted {
		c.JSON(http.StatusConflict, decision)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"decision": decision, "timer": candidate})
}

// StopTimer closes the employee's running timer.
func (h *ScheduleHandler) StopTimer(c *gin.Context) {
	var input struct {
		EmployeeID string `json:"employeeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	iv, err := h.Engine.StopTimer(c.Request.Context(), input.EmployeeID)
	if err != nil {
		if errors.Is(err, scheduling.ErrNoActiveTimer) {
			utils.JSONError(c, http.StatusNotFound, "no active timer", "employee "+input.EmployeeID+" has no running timer")
			return
		}
		writeAdmissionError(c, h.Logger, "failed to stop timer", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timer": iv})
}

// CreateTimeLogEntry admits a manually entered, fully bounded time-log
// entry (e.g. back-dated work).
func (h *ScheduleHandler) CreateTimeLogEntry(c *gin.Context) {
	var input struct {
		EmployeeID string    `json:"employeeId" binding:"required"`
		Start      time.Time `json:"start" binding:"required"`
		End        time.Time `json:"end" binding:"required"`
		Note       string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	end := input.End
	candidate := models.Interval{
		ID:        uuid.New().String(),
		OwnerKind: models.OwnerEmployee,
		OwnerID:   input.EmployeeID,
		Start:     input.Start,
		End:       &end,
		Status:    models.IntervalCompleted,
		Note:      input.Note,
	}

	decision, err := h.Engine.AdmitTimerStart(c.Request.Context(), input.EmployeeID, candidate, func(ctx context.Context) error {
		return h.Repo.Create(ctx, candidate)
	})
	if err != nil {
		writeAdmissionError(c, h.Logger, "failed to create time-log entry", err)
		return
	}
	if !decision.Accepted {
		c.JSON(http.StatusConflict, decision)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"decision": decision, "entry": candidate})
}

// DeleteTimeLogEntry removes an entry entirely (unlike cancellation this
// drops the record).
func (h *ScheduleHandler) DeleteTimeLogEntry(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete time-log entry", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}
