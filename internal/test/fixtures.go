package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cargoflow/cargoflow/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += int(randomIntn(maxLen - minLen + 1))
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// ScheduledShipment builds a scheduled shipment with the given go-live time.
func ScheduledShipment(goLiveAt time.Time) *model.Shipment {
	at := goLiveAt
	return &model.Shipment{
		PublicID:     RandomASCIIString(12, 12),
		ExporterID:   "exporter-" + RandomASCIIString(6, 6),
		ExporterName: "Exporter " + RandomASCIIString(4, 8),
		Status:       model.ShipmentStatusScheduled,
		ProductName:  "Frozen tuna",
		CargoType:    "reefer",
		Origin:       "Colombo",
		Destination:  "Rotterdam",
		GoLiveAt:     &at,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// LiveShipment builds a live shipment whose bidding closes at closeAt.
func LiveShipment(closeAt time.Time) *model.Shipment {
	shipment := ScheduledShipment(closeAt.Add(-3 * time.Minute))
	shipment.Status = model.ShipmentStatusLive
	at := closeAt
	shipment.BiddingCloseAt = &at
	return shipment
}
