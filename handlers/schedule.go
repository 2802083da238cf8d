package handlers

import (
	"net/http"
	"time"

	intervalRepo "autoshop/database/repository/interval"
	"autoshop/services/scheduling"
	"autoshop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the scheduling engine over HTTP. It is a thin
// binding layer: parsing, engine call, JSON response.
type ScheduleHandler struct {
	Engine scheduling.SchedulingEngine
	Repo   intervalRepo.IntervalRepository
	Logger *zap.Logger
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(engine scheduling.SchedulingEngine, repo intervalRepo.IntervalRepository, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Engine: engine, Repo: repo, Logger: logger}
}

// GetAvailableSlots returns free appointment start times for a day.
// Query params: date=YYYY-MM-DD (required), serviceType (optional).
func (h *ScheduleHandler) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD, got "+dateStr)
		return
	}
	serviceType := c.Query("serviceType")

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), date, serviceType)
	if err != nil {
		h.Logger.Error("failed to compute available slots", zap.String("date", dateStr), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute available slots", err.Error())
		return
	}

	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"date":        dateStr,
		"serviceType": serviceType,
		"slots":       out,
	})
}
