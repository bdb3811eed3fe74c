package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func TestClient_ListEvents_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.URL.Query().Get("start"))
		assert.NotEmpty(t, r.URL.Query().Get("end"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events":[
			{"id":"e1","title":"Standup","start":"2025-06-02T09:00:00Z","end":"2025-06-02T09:30:00Z"},
			{"id":"e2","title":"Lunch","start":"2025-06-02T12:00:00+02:00","end":"2025-06-02T13:00:00+02:00"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	events, err := client.ListEvents(context.Background(), start, start.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, 30, int(events[0].End.Sub(events[0].Start).Minutes()))
	// Offsets survive the round trip.
	_, offset := events[1].Start.Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestClient_ListEvents_BadTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"id":"e1","start":"yesterday","end":"today"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.ListEvents(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_CreateEvent_Success(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var payload eventPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Write report", payload.Title)
		assert.Equal(t, "t1", payload.SourceTask)
		assert.Equal(t, "2025-06-02T09:00:00Z", payload.Start)

		payload.ID = "cal-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	created, err := client.CreateEvent(context.Background(), domain.PlacedEvent{
		ID:     "ev-1",
		TaskID: "t1",
		Title:  "Write report",
		Start:  start,
		End:    start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "cal-1", created.ID)
	assert.True(t, created.Start.Equal(start))
}

func TestClient_CreateEvent_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"overlapping event"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.CreateEvent(context.Background(), domain.PlacedEvent{
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "overlapping event")
}

func TestClient_UpdateEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/cal-1", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	err := client.UpdateEvent(context.Background(), "cal-1", domain.PlacedEvent{
		Title: "Moved",
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	assert.NoError(t, err)
}

func TestClient_DeleteEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/cal-1", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	assert.NoError(t, client.DeleteEvent(context.Background(), "cal-1"))
}

func TestClient_ListEvents_Unavailable(t *testing.T) {
	client := NewClient(testConfig("http://127.0.0.1:1")) // nothing listening
	_, err := client.ListEvents(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ListEvents_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	client := NewClient(cfg)
	_, err := client.ListEvents(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, ErrTimeout)
}
