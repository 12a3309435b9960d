package notifier

import (
	"context"
	"errors"
	"github.com/OpenTransitTools/arrivalnotify/business/data/arrivals"
	"github.com/OpenTransitTools/arrivalnotify/foundation/httpclient"
	"github.com/gorilla/mux"
	"io"
	logger "log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

const testPayload = `{"name":"Test Stop","timestamp_calculated":"2024-01-01 08:00:00",` +
	`"lines":[{"arrivals":[{"time":"08:15:30"},{"time":"08:30:00"}]}]}`

func discardLogger() *logger.Logger {
	return logger.New(io.Discard, "", 0)
}

//fakeArrivalsAPI serves a fixed body for /api/v1/arrivals/{stop}/ and records the requests it received
type fakeArrivalsAPI struct {
	mu       sync.Mutex
	server   *httptest.Server
	body     string
	status   int
	requests []recordedRequest
	stops    []int
}

type recordedRequest struct {
	query  url.Values
	header http.Header
}

func startFakeArrivalsAPI(t *testing.T, body string) *fakeArrivalsAPI {
	api := &fakeArrivalsAPI{body: body, status: http.StatusOK}
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/arrivals/{stop:[0-9]+}/", func(w http.ResponseWriter, r *http.Request) {
		stop, _ := strconv.Atoi(mux.Vars(r)["stop"])
		api.mu.Lock()
		defer api.mu.Unlock()
		api.stops = append(api.stops, stop)
		api.requests = append(api.requests, recordedRequest{query: r.URL.Query(), header: r.Header.Clone()})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = w.Write([]byte(api.body))
	}).Methods(http.MethodGet).Queries("type", "bus")
	api.server = httptest.NewServer(router)
	t.Cleanup(api.server.Close)
	return api
}

func (f *fakeArrivalsAPI) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeArrivalsAPI) recorded() ([]recordedRequest, []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests, f.stops
}

func (f *fakeArrivalsAPI) endpoints() Endpoints {
	return Endpoints{APIHost: f.server.URL, WebHost: "https://www.sofiatraffic.bg"}
}

func makeTestClient(t *testing.T, body string, destination SnapshotDestination) (*ArrivalsClient, *fakeArrivalsAPI) {
	api := startFakeArrivalsAPI(t, body)
	query := arrivals.Query{LineNumber: 304, StopNumber: 2688}
	client := NewArrivalsClient(discardLogger(), httpclient.NewClient(discardLogger(), 0), api.endpoints(),
		query, destination)
	return client, api
}

func fetchTestClient(t *testing.T, body string) *ArrivalsClient {
	client, _ := makeTestClient(t, body, nil)
	if err := client.FetchArrivals(context.Background()); err != nil {
		t.Fatalf("unexpected error fetching arrivals: %v", err)
	}
	return client
}

//stubSource answers every Get from a queue of bodies, or with err when set
type stubSource struct {
	bodies []string
	err    error
	calls  int
}

func (s *stubSource) Get(_ context.Context, _ string, _ http.Header) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	body := s.bodies[0]
	s.bodies = s.bodies[1:]
	return []byte(body), nil
}

//recordingSender records messages instead of sending them
type recordingSender struct {
	messageID string
	err       error
	sent      []sentMessage
}

type sentMessage struct {
	body string
	from string
	to   string
}

func (r *recordingSender) Send(body string, from string, to string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.sent = append(r.sent, sentMessage{body: body, from: from, to: to})
	return r.messageID, nil
}

//recordingDestination records published snapshots
type recordingDestination struct {
	err       error
	published []arrivals.Snapshot
}

func (r *recordingDestination) Publish(_ arrivals.Query, snapshot *arrivals.Snapshot) error {
	r.published = append(r.published, *snapshot)
	return r.err
}

var errTestFailure = errors.New("test failure")
