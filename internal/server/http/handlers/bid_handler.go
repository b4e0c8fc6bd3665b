package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// BidHandler manages bid endpoints.
type BidHandler struct {
	facade BidFacade
}

// NewBidHandler constructs BidHandler.
func NewBidHandler(facade BidFacade) *BidHandler {
	return &BidHandler{facade: facade}
}

// Place handles POST /api/shipments/:id/bids.
func (h *BidHandler) Place(c *gin.Context) {
	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.CarrierID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	bid, err := h.facade.PlaceBid(c.Request.Context(), &model.Bid{
		ShipmentID:  c.Param("id"),
		CarrierID:   req.CarrierID,
		CarrierName: req.CarrierName,
		BidAmount:   req.BidAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotRegistered):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrBiddingClosed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrBidLimitReached):
			c.Status(http.StatusTooManyRequests)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toBidResponse(*bid))
}

// List handles GET /api/shipments/:id/bids.
func (h *BidHandler) List(c *gin.Context) {
	bids, err := h.facade.ShipmentBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(bids) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		response = append(response, toBidResponse(b))
	}
	c.JSON(http.StatusOK, response)
}

// ByCarrier handles GET /api/carriers/:carrierId/bids.
func (h *BidHandler) ByCarrier(c *gin.Context) {
	bids, err := h.facade.CarrierBids(c.Request.Context(), c.Param("carrierId"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(bids) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		response = append(response, toBidResponse(b))
	}
	c.JSON(http.StatusOK, response)
}

func toBidResponse(b model.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:          b.ID,
		ShipmentID:  b.ShipmentID,
		CarrierID:   b.CarrierID,
		CarrierName: b.CarrierName,
		BidAmount:   b.BidAmount,
		CreatedAt:   b.CreatedAt,
	}
}
