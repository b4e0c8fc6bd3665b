package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/server/http/dto"
)

// RegistrationHandler manages carrier registration endpoints.
type RegistrationHandler struct {
	facade RegistrationFacade
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(facade RegistrationFacade) *RegistrationHandler {
	return &RegistrationHandler{facade: facade}
}

// Register handles POST /api/shipments/:id/registrations.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.CarrierID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RegisterCarrier(c.Request.Context(), &model.Registration{
		ShipmentID: c.Param("id"),
		CarrierID:  req.CarrierID,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// List handles GET /api/shipments/:id/registrations.
func (h *RegistrationHandler) List(c *gin.Context) {
	registrations, err := h.facade.ShipmentRegistrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(registrations) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		response = append(response, dto.RegistrationResponse{
			ShipmentID:   r.ShipmentID,
			CarrierID:    r.CarrierID,
			PaymentRef:   r.PaymentRef,
			RegisteredAt: r.RegisteredAt,
		})
	}
	c.JSON(http.StatusOK, response)
}
