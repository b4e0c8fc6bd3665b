package test

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/cargoflow/cargoflow/internal/domain/errors"
	"github.com/cargoflow/cargoflow/internal/domain/model"
	"github.com/cargoflow/cargoflow/internal/domain/repository"
)

// BiddingCloseSet records one bookkeeping write of biddingCloseAt.
type BiddingCloseSet struct {
	ShipmentID string
	At         time.Time
}

// GoLiveTaskSet records one bookkeeping write of the go-live task handle.
type GoLiveTaskSet struct {
	ShipmentID string
	TaskName   string
}

// ShipmentRepositoryStub stores shipments in-memory for tests. Error knobs
// let individual operations fail while the rest keep working.
type ShipmentRepositoryStub struct {
	mu        sync.Mutex
	Shipments map[string]*model.Shipment
	next      int

	Err                  error
	TransitionErr        error
	SetBiddingCloseAtErr error
	SetGoLiveTaskErr     error

	BiddingCloseSets []BiddingCloseSet
	GoLiveTaskSets   []GoLiveTaskSet
}

// NewShipmentRepositoryStub constructs a stub with an initialized map.
func NewShipmentRepositoryStub() *ShipmentRepositoryStub {
	return &ShipmentRepositoryStub{Shipments: make(map[string]*model.Shipment)}
}

// Seed stores a shipment directly, assigning an id when absent.
func (s *ShipmentRepositoryStub) Seed(shipment *model.Shipment) *model.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shipment.ID == "" {
		s.next++
		shipment.ID = "shipment-" + strconv.Itoa(s.next)
	}
	s.Shipments[shipment.ID] = shipment.Clone()
	return shipment.Clone()
}

func (s *ShipmentRepositoryStub) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	stored := shipment.Clone()
	stored.ID = "shipment-" + strconv.Itoa(s.next)
	s.Shipments[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *ShipmentRepositoryStub) Get(ctx context.Context, id string) (*model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if shipment, ok := s.Shipments[id]; ok {
		return shipment.Clone(), nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ShipmentRepositoryStub) GetByPublicID(ctx context.Context, publicID string) (*model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, shipment := range s.Shipments {
		if shipment.PublicID == publicID {
			return shipment.Clone(), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ShipmentRepositoryStub) ListByExporter(ctx context.Context, exporterID string) ([]model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shipment
	for _, shipment := range s.Shipments {
		if shipment.ExporterID == exporterID {
			out = append(out, *shipment.Clone())
		}
	}
	return out, nil
}

func (s *ShipmentRepositoryStub) ListByStatus(ctx context.Context, status model.ShipmentStatus) ([]model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shipment
	for _, shipment := range s.Shipments {
		if shipment.Status == status {
			out = append(out, *shipment.Clone())
		}
	}
	return out, nil
}

func (s *ShipmentRepositoryStub) Update(ctx context.Context, id string, draft model.ShipmentDraft) (*model.Shipment, *model.Shipment, error) {
	if s.Err != nil {
		return nil, nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Shipments[id]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	before := stored.Clone()
	stored.ExporterID = draft.ExporterID
	stored.ExporterName = draft.ExporterName
	stored.Status = draft.Status
	stored.ProductName = draft.ProductName
	stored.CargoType = draft.CargoType
	stored.Origin = draft.Origin
	stored.Destination = draft.Destination
	stored.CargoReadyDate = draft.CargoReadyDate
	stored.GoLiveAt = draft.GoLiveAt
	return before, stored.Clone(), nil
}

func (s *ShipmentRepositoryStub) Transition(ctx context.Context, id string, transition model.StatusTransition) (*model.Shipment, *model.Shipment, error) {
	if s.TransitionErr != nil {
		return nil, nil, s.TransitionErr
	}
	if s.Err != nil {
		return nil, nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Shipments[id]
	if !ok {
		return nil, nil, domainErrors.ErrNotFound
	}
	if stored.Status != transition.From {
		return nil, nil, domainErrors.ErrInvalidStatus
	}
	before := stored.Clone()
	stored.Status = transition.To
	if transition.BiddingCloseAt != nil {
		at := *transition.BiddingCloseAt
		stored.BiddingCloseAt = &at
	}
	if transition.Winner != nil {
		stored.WinningCarrierID = transition.Winner.CarrierID
		stored.WinningCarrierName = transition.Winner.CarrierName
		stored.WinningBidID = transition.Winner.BidID
		stored.WinningBidAmount = transition.Winner.Amount
	}
	return before, stored.Clone(), nil
}

func (s *ShipmentRepositoryStub) Delete(ctx context.Context, id string) (*model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Shipments[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.Shipments, id)
	return stored, nil
}

func (s *ShipmentRepositoryStub) SetBiddingCloseAt(ctx context.Context, id string, at time.Time) error {
	if s.SetBiddingCloseAtErr != nil {
		return s.SetBiddingCloseAtErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Shipments[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	when := at
	stored.BiddingCloseAt = &when
	s.BiddingCloseSets = append(s.BiddingCloseSets, BiddingCloseSet{ShipmentID: id, At: at})
	return nil
}

func (s *ShipmentRepositoryStub) SetGoLiveTask(ctx context.Context, id string, taskName string) error {
	if s.SetGoLiveTaskErr != nil {
		return s.SetGoLiveTaskErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Shipments[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.GoLiveTaskName = taskName
	s.GoLiveTaskSets = append(s.GoLiveTaskSets, GoLiveTaskSet{ShipmentID: id, TaskName: taskName})
	return nil
}

func (s *ShipmentRepositoryStub) ListDueForGoLive(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shipment
	for _, shipment := range s.Shipments {
		if int64(len(out)) >= limit {
			break
		}
		if shipment.Status != model.ShipmentStatusScheduled || shipment.GoLiveAt == nil {
			continue
		}
		if shipment.GoLiveAt.After(now) {
			continue
		}
		out = append(out, *shipment.Clone())
	}
	return out, nil
}

func (s *ShipmentRepositoryStub) ListDueForReview(ctx context.Context, now time.Time, limit int64) ([]model.Shipment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Shipment
	for _, shipment := range s.Shipments {
		if int64(len(out)) >= limit {
			break
		}
		if shipment.Status != model.ShipmentStatusLive || shipment.BiddingCloseAt == nil {
			continue
		}
		if shipment.BiddingCloseAt.After(now) {
			continue
		}
		out = append(out, *shipment.Clone())
	}
	return out, nil
}

// BidRepositoryStub stores bids in-memory for tests.
type BidRepositoryStub struct {
	mu   sync.Mutex
	Bids []model.Bid
	next int

	Err error
}

func (s *BidRepositoryStub) Create(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	stored := *bid
	stored.ID = "bid-" + strconv.Itoa(s.next)
	s.Bids = append(s.Bids, stored)
	return &stored, nil
}

func (s *BidRepositoryStub) ListByShipment(ctx context.Context, shipmentID string) ([]model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Bid
	for _, bid := range s.Bids {
		if bid.ShipmentID == shipmentID {
			out = append(out, bid)
		}
	}
	return out, nil
}

func (s *BidRepositoryStub) ListByCarrier(ctx context.Context, carrierID string) ([]model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Bid
	for _, bid := range s.Bids {
		if bid.CarrierID == carrierID {
			out = append(out, bid)
		}
	}
	return out, nil
}

func (s *BidRepositoryStub) CountByCarrier(ctx context.Context, shipmentID, carrierID string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, bid := range s.Bids {
		if bid.ShipmentID == shipmentID && bid.CarrierID == carrierID {
			count++
		}
	}
	return count, nil
}

// RegistrationRepositoryStub stores registrations in-memory for tests.
type RegistrationRepositoryStub struct {
	mu            sync.Mutex
	Registrations map[string]*model.Registration

	Err error
}

// NewRegistrationRepositoryStub constructs a stub with an initialized map.
func NewRegistrationRepositoryStub() *RegistrationRepositoryStub {
	return &RegistrationRepositoryStub{Registrations: make(map[string]*model.Registration)}
}

func registrationKey(shipmentID, carrierID string) string {
	return shipmentID + "/" + carrierID
}

func (s *RegistrationRepositoryStub) Create(ctx context.Context, reg *model.Registration) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := registrationKey(reg.ShipmentID, reg.CarrierID)
	if _, exists := s.Registrations[key]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *reg
	s.Registrations[key] = &stored
	return nil
}

func (s *RegistrationRepositoryStub) Get(ctx context.Context, shipmentID, carrierID string) (*model.Registration, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.Registrations[registrationKey(shipmentID, carrierID)]; ok {
		stored := *reg
		return &stored, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *RegistrationRepositoryStub) ListByShipment(ctx context.Context, shipmentID string) ([]model.Registration, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Registration
	for _, reg := range s.Registrations {
		if reg.ShipmentID == shipmentID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

// NotificationRepositoryStub collects notifications written during tests.
type NotificationRepositoryStub struct {
	mu            sync.Mutex
	Notifications []model.Notification
	next          int

	Err error
}

func (s *NotificationRepositoryStub) Create(ctx context.Context, notification *model.Notification) (*model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	stored := *notification
	stored.ID = "notification-" + strconv.Itoa(s.next)
	s.Notifications = append(s.Notifications, stored)
	return &stored, nil
}

func (s *NotificationRepositoryStub) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.Notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

// ForRecipient returns notifications addressed to one recipient.
func (s *NotificationRepositoryStub) ForRecipient(recipientID string) []model.Notification {
	out, _ := s.ListByRecipient(context.Background(), recipientID)
	return out
}

// FactoryStub bundles the in-memory repositories.
type FactoryStub struct {
	ShipmentRepo     *ShipmentRepositoryStub
	BidRepo          *BidRepositoryStub
	RegistrationRepo *RegistrationRepositoryStub
	NotificationRepo *NotificationRepositoryStub
}

// NewFactoryStub constructs a factory over fresh in-memory repositories.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{
		ShipmentRepo:     NewShipmentRepositoryStub(),
		BidRepo:          &BidRepositoryStub{},
		RegistrationRepo: NewRegistrationRepositoryStub(),
		NotificationRepo: &NotificationRepositoryStub{},
	}
}

func (f *FactoryStub) Shipments() repository.ShipmentRepository { return f.ShipmentRepo }
func (f *FactoryStub) Bids() repository.BidRepository           { return f.BidRepo }
func (f *FactoryStub) Registrations() repository.RegistrationRepository {
	return f.RegistrationRepo
}
func (f *FactoryStub) Notifications() repository.NotificationRepository {
	return f.NotificationRepo
}

var _ repository.Factory = (*FactoryStub)(nil)
