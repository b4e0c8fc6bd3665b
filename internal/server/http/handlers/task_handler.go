package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// TaskHandler receives deferred lifecycle callbacks from the task queue
// dispatcher. Responses are plain text: the dispatcher only cares about the
// status code, the body is for operators reading delivery logs.
type TaskHandler struct {
	facade TaskFacade
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(facade TaskFacade) *TaskHandler {
	return &TaskHandler{facade: facade}
}

// GoLive handles POST /api/tasks/go-live.
func (h *TaskHandler) GoLive(c *gin.Context) {
	h.execute(c, h.facade.ExecuteGoLive)
}

// CloseBidding handles POST /api/tasks/close-bidding.
func (h *TaskHandler) CloseBidding(c *gin.Context) {
	h.execute(c, h.facade.ExecuteCloseBidding)
}

// execute shares the callback contract: a stale delivery for a shipment that
// already moved on is acknowledged with 200 so the queue never retries it.
func (h *TaskHandler) execute(c *gin.Context, run func(context.Context, string) (bool, error)) {
	var req dto.TaskCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ShipmentID == "" {
		c.String(http.StatusBadRequest, "Missing shipment id.")
		return
	}

	transitioned, err := run(c.Request.Context(), req.ShipmentID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.String(http.StatusNotFound, "Shipment not found.")
			return
		}
		c.String(http.StatusInternalServerError, "Callback failed.")
		return
	}

	if transitioned {
		c.String(http.StatusOK, "OK")
		return
	}
	c.String(http.StatusOK, "No action needed.")
}
