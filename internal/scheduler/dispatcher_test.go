package scheduler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type stubSource struct {
	mu    sync.Mutex
	tasks []Task
}

func (s *stubSource) ClaimDue(ctx context.Context, now time.Time, limit int64) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := s.tasks
	s.tasks = nil
	return due, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue() (string, error) { return "service-token", nil }

func TestDispatcherDeliversDueTask(t *testing.T) {
	type delivery struct {
		auth        string
		contentType string
		body        string
	}
	received := make(chan delivery, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- delivery{
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	source := &stubSource{tasks: []Task{{
		Name:       "task-1",
		TargetURL:  server.URL,
		Payload:    []byte(`{"shipmentId":"s1"}`),
		ScheduleAt: time.Now().Add(-time.Second),
	}}}

	dispatcher := NewDispatcher(source, stubIssuer{}, 5*time.Millisecond, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	select {
	case got := <-received:
		if got.auth != "Bearer service-token" {
			t.Fatalf("unexpected authorization header %q", got.auth)
		}
		if got.contentType != "application/json" {
			t.Fatalf("unexpected content type %q", got.contentType)
		}
		if got.body != `{"shipmentId":"s1"}` {
			t.Fatalf("unexpected body %q", got.body)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for delivery")
	}
}

func TestDispatcherSurvivesCallbackFailure(t *testing.T) {
	calls := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls <- string(body)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	source := &stubSource{tasks: []Task{
		{Name: "task-1", TargetURL: server.URL, Payload: []byte(`{"shipmentId":"s1"}`), ScheduleAt: time.Now()},
		{Name: "task-2", TargetURL: server.URL, Payload: []byte(`{"shipmentId":"s2"}`), ScheduleAt: time.Now()},
	}}

	dispatcher := NewDispatcher(source, stubIssuer{}, 5*time.Millisecond, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for delivery %d", i+1)
		}
	}
}
