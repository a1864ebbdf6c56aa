package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SyncraLabs/Accountify-sub001/internal/adapters/handler/http/middleware"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/schedule"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/services"
)

// StatusHandler exposes the computed side of habits: per-day statuses, weekly
// progress counters and the full week dashboard. Nothing here is stored; every
// response is derived from the habit's policy and its completion log at
// request time.
type StatusHandler struct {
	svc *services.StatusService
}

func NewStatusHandler(svc *services.StatusService) *StatusHandler {
	return &StatusHandler{
		svc: svc,
	}
}

func (h *StatusHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/habits/:id/status", h.DayStatus)
	router.GET("/habits/:id/progress", h.WeekProgress)
	router.GET("/status/week", h.WeekOverview)
}

// queryDate reads the optional ?date= parameter, defaulting to today (UTC).
func queryDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return time.Now().UTC(), true
	}

	date, err := time.Parse(queryDateFormat, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func (h *StatusHandler) DayStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habitID := c.Param("id")

	date, ok := queryDate(c)
	if !ok {
		return
	}

	report, err := h.svc.DayStatus(c.Request.Context(), userID, habitID, date, time.Now().UTC())
	if err != nil {
		h.renderStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StatusHandler) WeekProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habitID := c.Param("id")

	date, ok := queryDate(c)
	if !ok {
		return
	}

	progress, err := h.svc.WeekProgress(c.Request.Context(), userID, habitID, date, time.Now().UTC())
	if err != nil {
		h.renderStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *StatusHandler) WeekOverview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, ok := queryDate(c)
	if !ok {
		return
	}

	overview, err := h.svc.WeekOverview(c.Request.Context(), userID, date, time.Now().UTC())
	if err != nil {
		h.renderStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *StatusHandler) renderStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "habit belongs to another user"})
	case errors.Is(err, schedule.ErrUnknownPolicy):
		// Stored data with a policy the engine does not recognize: a data
		// integrity problem, not a client error.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "habit has an unrecognized policy"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
