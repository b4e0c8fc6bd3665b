package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// ShipmentHandler manages shipment endpoints.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// Create handles POST /api/shipments.
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req dto.ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.ExporterID == "" || req.ProductName == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	shipment, err := h.facade.CreateShipment(c.Request.Context(), draftFromRequest(req))
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidStatus) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// Get handles GET /api/shipments/:id.
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipment, err := h.facade.Shipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Track handles GET /api/track/:publicId, the link-safe lookup used by
// dashboard deep links.
func (h *ShipmentHandler) Track(c *gin.Context) {
	shipment, err := h.facade.ShipmentByPublicID(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// List handles GET /api/shipments filtered by exporter or status.
func (h *ShipmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		shipments []model.Shipment
		err       error
	)
	switch {
	case c.Query("exporterId") != "":
		shipments, err = h.facade.ShipmentsByExporter(ctx, c.Query("exporterId"))
	case c.Query("status") != "":
		status := model.ShipmentStatus(c.Query("status"))
		if !status.Valid() {
			c.Status(http.StatusBadRequest)
			return
		}
		shipments, err = h.facade.ShipmentsByStatus(ctx, status)
	default:
		c.Status(http.StatusBadRequest)
		return
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(shipments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		response = append(response, toShipmentResponse(&shipments[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/shipments/:id.
func (h *ShipmentHandler) Update(c *gin.Context) {
	var req dto.ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	shipment, err := h.facade.UpdateShipment(c.Request.Context(), c.Param("id"), draftFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// Delete handles DELETE /api/shipments/:id.
func (h *ShipmentHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteShipment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// Award handles POST /api/shipments/:id/award.
func (h *ShipmentHandler) Award(c *gin.Context) {
	var req dto.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.CarrierID == "" || req.BidID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	shipment, err := h.facade.AwardShipment(c.Request.Context(), c.Param("id"), model.WinningBid{
		CarrierID:   req.CarrierID,
		CarrierName: req.CarrierName,
		BidID:       req.BidID,
		Amount:      req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

func draftFromRequest(req dto.ShipmentRequest) model.ShipmentDraft {
	return model.ShipmentDraft{
		ExporterID:     req.ExporterID,
		ExporterName:   req.ExporterName,
		Status:         model.ShipmentStatus(req.Status),
		ProductName:    req.ProductName,
		CargoType:      req.CargoType,
		Origin:         req.Origin,
		Destination:    req.Destination,
		CargoReadyDate: req.CargoReadyDate,
		GoLiveAt:       req.GoLiveAt,
	}
}

func toShipmentResponse(s *model.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:                 s.ID,
		PublicID:           s.PublicID,
		ExporterID:         s.ExporterID,
		ExporterName:       s.ExporterName,
		Status:             string(s.Status),
		ProductName:        s.ProductName,
		CargoType:          s.CargoType,
		Origin:             s.Origin,
		Destination:        s.Destination,
		CargoReadyDate:     s.CargoReadyDate,
		GoLiveAt:           s.GoLiveAt,
		BiddingCloseAt:     s.BiddingCloseAt,
		WinningCarrierID:   s.WinningCarrierID,
		WinningCarrierName: s.WinningCarrierName,
		WinningBidID:       s.WinningBidID,
		WinningBidAmount:   s.WinningBidAmount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
