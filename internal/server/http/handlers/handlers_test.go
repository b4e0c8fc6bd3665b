package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cargoflow/cargoflow/internal/archive"
	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/server/http/dto"
	testhelpers "github.com/cargoflow/cargoflow/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShipmentHandlerCreate(t *testing.T) {
	facade := testhelpers.ShipmentFacadeStub{CreateFn: func(_ context.Context, draft model.ShipmentDraft) (*model.Shipment, error) {
		if draft.ProductName != "Avocados" {
			t.Fatalf("unexpected draft passed to facade: %+v", draft)
		}
		return &model.Shipment{ID: "ship-1", PublicID: "pub-1", ProductName: draft.ProductName, Status: model.ShipmentStatusDraft}, nil
	}}
	body, _ := json.Marshal(dto.ShipmentRequest{ExporterID: "exp-1", ProductName: "Avocados"})

	resp := performRequest(t, http.MethodPost, "/shipments", "/shipments", NewShipmentHandler(facade).Create, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var decoded dto.ShipmentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != "ship-1" || decoded.PublicID != "pub-1" {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestShipmentHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.ShipmentFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing exporter", body: []byte(`{"productName":"Avocados"}`), status: http.StatusBadRequest},
		{name: "lifecycle status", body: []byte(`{"exporterId":"exp-1","productName":"Avocados","status":"live"}`), facade: testhelpers.ShipmentFacadeStub{CreateFn: func(context.Context, model.ShipmentDraft) (*model.Shipment, error) {
			return nil, domainErrors.ErrInvalidStatus
		}}, status: http.StatusUnprocessableEntity},
		{name: "internal", body: []byte(`{"exporterId":"exp-1","productName":"Avocados"}`), facade: testhelpers.ShipmentFacadeStub{CreateFn: func(context.Context, model.ShipmentDraft) (*model.Shipment, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/shipments", "/shipments", NewShipmentHandler(tt.facade).Create, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestShipmentHandlerGetNotFound(t *testing.T) {
	facade := testhelpers.ShipmentFacadeStub{GetFn: func(context.Context, string) (*model.Shipment, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/shipments/:id", "/shipments/nope", NewShipmentHandler(facade).Get, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestShipmentHandlerList(t *testing.T) {
	facade := testhelpers.ShipmentFacadeStub{ByExporterFn: func(_ context.Context, exporterID string) ([]model.Shipment, error) {
		if exporterID != "exp-1" {
			t.Fatalf("unexpected exporter filter %q", exporterID)
		}
		return []model.Shipment{{ID: "ship-1"}, {ID: "ship-2"}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/shipments", "/shipments?exporterId=exp-1", NewShipmentHandler(facade).List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded []dto.ShipmentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 shipments, got %d", len(decoded))
	}
}

func TestShipmentHandlerListFailures(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "no filter", target: "/shipments", status: http.StatusBadRequest},
		{name: "unknown status", target: "/shipments?status=limbo", status: http.StatusBadRequest},
		{name: "empty result", target: "/shipments?status=live", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/shipments", tt.target, NewShipmentHandler(testhelpers.ShipmentFacadeStub{}).List, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestShipmentHandlerDelete(t *testing.T) {
	deleted := ""
	facade := testhelpers.ShipmentFacadeStub{DeleteFn: func(_ context.Context, id string) error {
		deleted = id
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/shipments/:id", "/shipments/ship-1", NewShipmentHandler(facade).Delete, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if deleted != "ship-1" {
		t.Fatalf("unexpected id passed to facade: %q", deleted)
	}
}

func TestShipmentHandlerAwardFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.ShipmentFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "missing carrier", body: []byte(`{"bidId":"bid-1"}`), status: http.StatusBadRequest},
		{name: "not reviewing", body: []byte(`{"carrierId":"car-1","bidId":"bid-1"}`), facade: testhelpers.ShipmentFacadeStub{AwardFn: func(context.Context, string, model.WinningBid) (*model.Shipment, error) {
			return nil, domainErrors.ErrInvalidStatus
		}}, status: http.StatusConflict},
		{name: "not found", body: []byte(`{"carrierId":"car-1","bidId":"bid-1"}`), facade: testhelpers.ShipmentFacadeStub{AwardFn: func(context.Context, string, model.WinningBid) (*model.Shipment, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/shipments/:id/award", "/shipments/ship-1/award", NewShipmentHandler(tt.facade).Award, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestBidHandlerPlace(t *testing.T) {
	facade := testhelpers.BidFacadeStub{PlaceFn: func(_ context.Context, bid *model.Bid) (*model.Bid, error) {
		if bid.ShipmentID != "ship-1" || bid.CarrierID != "car-1" {
			t.Fatalf("unexpected bid passed to facade: %+v", bid)
		}
		placed := *bid
		placed.ID = "bid-1"
		placed.CreatedAt = time.Unix(0, 0)
		return &placed, nil
	}}
	body, _ := json.Marshal(dto.PlaceBidRequest{CarrierID: "car-1", CarrierName: "Fast Freight", BidAmount: 1200})

	resp := performRequest(t, http.MethodPost, "/shipments/:id/bids", "/shipments/ship-1/bids", NewBidHandler(facade).Place, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var decoded dto.BidResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.ID != "bid-1" || decoded.BidAmount != 1200 {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestBidHandlerPlaceFailures(t *testing.T) {
	body := []byte(`{"carrierId":"car-1","bidAmount":100}`)
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "invalid amount", err: domainErrors.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
		{name: "not registered", err: domainErrors.ErrNotRegistered, status: http.StatusForbidden},
		{name: "bidding closed", err: domainErrors.ErrBiddingClosed, status: http.StatusConflict},
		{name: "bid limit", err: domainErrors.ErrBidLimitReached, status: http.StatusTooManyRequests},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.BidFacadeStub{PlaceFn: func(context.Context, *model.Bid) (*model.Bid, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/shipments/:id/bids", "/shipments/ship-1/bids", NewBidHandler(facade).Place, body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestRegistrationHandlerRegister(t *testing.T) {
	var got *model.Registration
	facade := testhelpers.RegistrationFacadeStub{RegisterFn: func(_ context.Context, reg *model.Registration) error {
		got = reg
		return nil
	}}
	body, _ := json.Marshal(dto.RegisterRequest{CarrierID: "car-1", PaymentRef: "pay-99"})

	resp := performRequest(t, http.MethodPost, "/shipments/:id/registrations", "/shipments/ship-1/registrations", NewRegistrationHandler(facade).Register, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got == nil || got.ShipmentID != "ship-1" || got.CarrierID != "car-1" {
		t.Fatalf("unexpected registration passed to facade: %+v", got)
	}
}

func TestRegistrationHandlerRegisterConflict(t *testing.T) {
	facade := testhelpers.RegistrationFacadeStub{RegisterFn: func(context.Context, *model.Registration) error {
		return domainErrors.ErrAlreadyExists
	}}
	body := []byte(`{"carrierId":"car-1"}`)
	resp := performRequest(t, http.MethodPost, "/shipments/:id/registrations", "/shipments/ship-1/registrations", NewRegistrationHandler(facade).Register, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestNotificationHandlerList(t *testing.T) {
	facade := testhelpers.NotificationFacadeStub{ListFn: func(_ context.Context, recipientID string) ([]model.Notification, error) {
		return []model.Notification{{ID: "n-1", RecipientID: recipientID, Message: "Bidding is now open."}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/users/:userId/notifications", "/users/car-1/notifications", NewNotificationHandler(facade).List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded []dto.NotificationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].RecipientID != "car-1" {
		t.Fatalf("unexpected response: %+v", decoded)
	}
}

func TestNotificationHandlerListEmpty(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/users/:userId/notifications", "/users/car-1/notifications", NewNotificationHandler(testhelpers.NotificationFacadeStub{}).List, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestTaskHandlerGoLive(t *testing.T) {
	facade := testhelpers.TaskFacadeStub{GoLiveFn: func(_ context.Context, shipmentID string) (bool, error) {
		if shipmentID != "ship-1" {
			t.Fatalf("unexpected shipment id %q", shipmentID)
		}
		return true, nil
	}}
	body := []byte(`{"shipmentId":"ship-1"}`)

	resp := performRequest(t, http.MethodPost, "/tasks/go-live", "/tasks/go-live", NewTaskHandler(facade).GoLive, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "OK" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestTaskHandlerGoLiveStaleDelivery(t *testing.T) {
	facade := testhelpers.TaskFacadeStub{GoLiveFn: func(context.Context, string) (bool, error) {
		return false, nil
	}}
	body := []byte(`{"shipmentId":"ship-1"}`)

	resp := performRequest(t, http.MethodPost, "/tasks/go-live", "/tasks/go-live", NewTaskHandler(facade).GoLive, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "No action needed." {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestTaskHandlerFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.TaskFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "missing id", body: []byte(`{}`), status: http.StatusBadRequest},
		{name: "unknown shipment", body: []byte(`{"shipmentId":"nope"}`), facade: testhelpers.TaskFacadeStub{GoLiveFn: func(context.Context, string) (bool, error) {
			return false, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "internal", body: []byte(`{"shipmentId":"ship-1"}`), facade: testhelpers.TaskFacadeStub{GoLiveFn: func(context.Context, string) (bool, error) {
			return false, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/tasks/go-live", "/tasks/go-live", NewTaskHandler(tt.facade).GoLive, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestTaskHandlerCloseBidding(t *testing.T) {
	facade := testhelpers.TaskFacadeStub{CloseBiddingFn: func(context.Context, string) (bool, error) {
		return true, nil
	}}
	body := []byte(`{"shipmentId":"ship-1"}`)

	resp := performRequest(t, http.MethodPost, "/tasks/close-bidding", "/tasks/close-bidding", NewTaskHandler(facade).CloseBidding, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != "OK" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestHistoryHandler(t *testing.T) {
	facade := testhelpers.HistoryFacadeStub{
		TransitionsFn: func(context.Context, string) ([]archive.Transition, error) {
			return []archive.Transition{{ShipmentID: "ship-1", ToStatus: "scheduled"}, {ShipmentID: "ship-1", FromStatus: "scheduled", ToStatus: "live"}}, nil
		},
		BidsFn: func(context.Context, string) ([]archive.ArchivedBid, error) {
			return []archive.ArchivedBid{{BidID: "bid-1", ShipmentID: "ship-1", Amount: 900}}, nil
		},
	}

	resp := performRequest(t, http.MethodGet, "/shipments/:id/history", "/shipments/ship-1/history", NewHistoryHandler(facade).History, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var decoded dto.HistoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Transitions) != 2 || len(decoded.Bids) != 1 {
		t.Fatalf("unexpected history: %+v", decoded)
	}
	if decoded.Transitions[1].ToStatus != "live" {
		t.Fatalf("unexpected transition order: %+v", decoded.Transitions)
	}
}
