package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// HistoryHandler serves the archived record of a shipment.
type HistoryHandler struct {
	facade HistoryFacade
}

// NewHistoryHandler constructs HistoryHandler.
func NewHistoryHandler(facade HistoryFacade) *HistoryHandler {
	return &HistoryHandler{facade: facade}
}

// History handles GET /api/shipments/:id/history.
func (h *HistoryHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	transitions, err := h.facade.ShipmentTransitions(ctx, id)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	bids, err := h.facade.ShipmentArchivedBids(ctx, id)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.HistoryResponse{
		Transitions: make([]dto.TransitionResponse, 0, len(transitions)),
		Bids:        make([]dto.ArchivedBidResponse, 0, len(bids)),
	}
	for _, tr := range transitions {
		response.Transitions = append(response.Transitions, dto.TransitionResponse{
			ShipmentID: tr.ShipmentID,
			PublicID:   tr.PublicID,
			FromStatus: tr.FromStatus,
			ToStatus:   tr.ToStatus,
			OccurredAt: tr.OccurredAt,
		})
	}
	for _, b := range bids {
		response.Bids = append(response.Bids, dto.ArchivedBidResponse{
			BidID:       b.BidID,
			ShipmentID:  b.ShipmentID,
			CarrierID:   b.CarrierID,
			CarrierName: b.CarrierName,
			Amount:      b.Amount,
			CreatedAt:   b.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
