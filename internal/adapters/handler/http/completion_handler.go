package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SyncraLabs/Accountify-sub001/internal/adapters/handler/http/middleware"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/domain"
	"github.com/SyncraLabs/Accountify-sub001/internal/core/services"
)

const queryDateFormat = "2006-01-02"

type CompletionHandler struct {
	svc *services.CompletionService
}

func NewCompletionHandler(svc *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
	}
}

type markDoneRequest struct {
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes"`
}

type updateCompletionRequest struct {
	Notes   string `json:"notes"`
	Version int    `json:"version"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/habits/:id/completions", h.MarkDone)
	router.GET("/habits/:id/completions", h.List)

	completions := router.Group("/completions")
	{
		completions.GET("/sync", h.Sync)
		completions.PUT("/:id", h.Update)
		completions.DELETE("/:id", h.Unmark)
	}
}

func (h *CompletionHandler) MarkDone(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habitID := c.Param("id")

	var req markDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(queryDateFormat, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	input := services.MarkDoneInput{
		HabitID: habitID,
		UserID:  userID,
		Date:    date,
		Notes:   req.Notes,
	}

	completion, err := h.svc.MarkDone(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "habit belongs to another user"})
		case errors.Is(err, domain.ErrCompletionExists):
			c.JSON(http.StatusConflict, gin.H{"error": "day already marked as done"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, completion)
}

func (h *CompletionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habitID := c.Param("id")

	var from, to time.Time
	var err error

	if fromStr := c.Query("from"); fromStr != "" {
		from, err = time.Parse(queryDateFormat, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, use YYYY-MM-DD"})
			return
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err = time.Parse(queryDateFormat, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, use YYYY-MM-DD"})
			return
		}
	}

	list, err := h.svc.ListByHabitID(c.Request.Context(), habitID, userID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "habit belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CompletionHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	var req updateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateCompletionInput{
		ID:      id,
		UserID:  userID,
		Notes:   req.Notes,
		Version: req.Version,
	}

	completion, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCompletionConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Data has been modified elsewhere. Please sync.",
			})
		case errors.Is(err, domain.ErrCompletionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "completion not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "completion belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, completion)
}

func (h *CompletionHandler) Unmark(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Unmark(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCompletionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "completion not found"})
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "completion belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompletionHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	lastSyncStr := c.Query("last_sync")
	var lastSync time.Time
	var err error

	if lastSyncStr != "" {
		lastSync, err = time.Parse(time.RFC3339, lastSyncStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_sync format, use RFC3339"})
			return
		}
	}

	deltas, err := h.svc.GetDelta(c.Request.Context(), userID, lastSync)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes":   deltas,
		"timestamp": time.Now().UTC(),
	})
}
