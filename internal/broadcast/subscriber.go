package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Subscriber listens on the shipment event pattern and feeds the websocket
// hub. It runs apart from the Publisher so a dashboard node can serve
// watchers without being the node that produced the event.
type Subscriber struct {
	client *redis.Client
	hub    *Hub
	logger *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSubscriber connects to Redis and verifies connectivity.
func NewSubscriber(ctx context.Context, addr, password string, db int, hub *Hub, logger *slog.Logger) (*Subscriber, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Subscriber{client: client, hub: hub, logger: logger}, nil
}

// Start begins relaying pub/sub messages to the hub.
func (s *Subscriber) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	pubsub := s.client.PSubscribe(runCtx, channelPrefix+"*")

	s.wg.Add(1)
	go s.loop(runCtx, pubsub)
}

// Stop terminates the relay and closes the connection.
func (s *Subscriber) Stop() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
	return s.client.Close()
}

func (s *Subscriber) loop(ctx context.Context, pubsub *redis.PubSub) {
	defer s.wg.Done()
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.hub.Broadcast(publicIDFromChannel(msg.Channel), []byte(msg.Payload))
		}
	}
}
