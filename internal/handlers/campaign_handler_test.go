package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
	"github.com/jenny-yujl/marketingTrain/internal/services"
	"github.com/jenny-yujl/marketingTrain/internal/storage/memory"
)

const completeCampaign = `{
	"name": "t1",
	"marketingGoal": "live_commerce",
	"optimizationTarget": "conversions",
	"priority": "balanced",
	"promotionScenario": "live_room",
	"placements": "[\"douyin_feed\",\"search\"]",
	"deviceTypes": ["ios", "android"],
	"productId": 1,
	"originalPrice": "399.00",
	"currentPrice": 299,
	"hasTimeLimitedDiscount": 1,
	"discountPercentage": 25,
	"ageRange": "18-30",
	"gender": "all",
	"location": "nationwide",
	"interests": "",
	"behaviors": [],
	"campaignType": "standard",
	"startTime": "2025-06-01T08:00",
	"totalBudget": 1000.50,
	"dailyBudget": "100",
	"biddingStrategy": "auto",
	"clickBid": "0.80",
	"weeklySchedule": [true, true, true, true, true, false, false]
}`

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev services.CampaignEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev.Type)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newCampaignRouter(store interfaces.CampaignStore, events services.EventPublisher) http.Handler {
	h := NewCampaignHandler(NewBaseHandler(nil), store, events)
	r := chi.NewRouter()
	r.Get("/campaigns", h.ListCampaigns)
	r.Post("/campaigns", h.CreateCampaign)
	r.Get("/campaigns/{id}", h.GetCampaign)
	r.Put("/campaigns/{id}", h.UpdateCampaign)
	r.Delete("/campaigns/{id}", h.DeleteCampaign)
	return r
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return v
}

func TestCreateCampaignReturnsCreatedDraft(t *testing.T) {
	events := &recordingPublisher{}
	r := newCampaignRouter(memory.New(), events)

	w := doRequest(r, http.MethodPost, "/campaigns", completeCampaign)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}

	resp := decodeBody[map[string]any](t, w)
	if resp["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", resp["id"])
	}
	if resp["status"] != "draft" {
		t.Fatalf("expected draft status, got %v", resp["status"])
	}
	if resp["totalBudget"] != "1000.50" {
		t.Fatalf("expected totalBudget 1000.50, got %v", resp["totalBudget"])
	}
	placements, _ := resp["placements"].([]any)
	if len(placements) != 2 || placements[0] != "douyin_feed" {
		t.Fatalf("unexpected placements %v", resp["placements"])
	}
	if interests, ok := resp["interests"].([]any); !ok || len(interests) != 0 {
		t.Fatalf("expected empty interests array, got %v", resp["interests"])
	}
	if resp["hasTimeLimitedDiscount"] != true {
		t.Fatalf("expected flag coerced to true, got %v", resp["hasTimeLimitedDiscount"])
	}
	if len(events.events) != 1 || events.events[0] != services.EventCampaignCreated {
		t.Fatalf("expected created event, got %v", events.events)
	}
}

func TestCreateCampaignMissingFieldIsRejected(t *testing.T) {
	store := memory.New()
	r := newCampaignRouter(store, nil)

	var body map[string]any
	if err := json.Unmarshal([]byte(completeCampaign), &body); err != nil {
		t.Fatal(err)
	}
	delete(body, "marketingGoal")
	raw, _ := json.Marshal(body)

	w := doRequest(r, http.MethodPost, "/campaigns", string(raw))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody[ErrorResponse](t, w)
	if resp.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", resp.Error)
	}
	found := false
	for _, fe := range resp.Errors {
		if fe.Path == "marketingGoal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected marketingGoal in errors, got %+v", resp.Errors)
	}

	list := doRequest(r, http.MethodGet, "/campaigns", "")
	if got := decodeBody[[]any](t, list); len(got) != 0 {
		t.Fatalf("expected no campaigns after failed create, got %d", len(got))
	}
}

func TestCreateCampaignInvalidJSON(t *testing.T) {
	r := newCampaignRouter(memory.New(), nil)
	w := doRequest(r, http.MethodPost, "/campaigns", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if resp := decodeBody[ErrorResponse](t, w); resp.Error != "invalid_request" {
		t.Fatalf("expected invalid_request, got %q", resp.Error)
	}
}

func TestListCampaignsEmptyIsArray(t *testing.T) {
	r := newCampaignRouter(memory.New(), nil)
	w := doRequest(r, http.MethodGet, "/campaigns", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected [], got %s", w.Body.String())
	}
}

func TestGetCampaignNotFoundReturnsJSON(t *testing.T) {
	r := newCampaignRouter(memory.New(), nil)

	w := doRequest(r, http.MethodGet, "/campaigns/42", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json got %q", ct)
	}
	if resp := decodeBody[ErrorResponse](t, w); resp.Error != "not_found" {
		t.Fatalf("expected not_found, got %v", resp)
	}
}

func TestGetCampaignRejectsNonIntegerID(t *testing.T) {
	r := newCampaignRouter(memory.New(), nil)
	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		w := doRequest(r, http.MethodGet, "/campaigns/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400 got %d", id, w.Code)
		}
	}
}

func TestUpdateCampaignMergesAndPublishesSubmitted(t *testing.T) {
	events := &recordingPublisher{}
	r := newCampaignRouter(memory.New(), events)
	if w := doRequest(r, http.MethodPost, "/campaigns", completeCampaign); w.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", w.Code)
	}

	w := doRequest(r, http.MethodPut, "/campaigns/1", `{"status":"submitted","interests":["travel"],"productId":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeBody[map[string]any](t, w)
	if resp["status"] != "submitted" {
		t.Fatalf("expected submitted, got %v", resp["status"])
	}
	if resp["productId"] != nil {
		t.Fatalf("expected productId cleared, got %v", resp["productId"])
	}
	if resp["name"] != "t1" {
		t.Fatalf("expected name untouched, got %v", resp["name"])
	}

	want := []string{services.EventCampaignCreated, services.EventCampaignUpdated, services.EventCampaignSubmitted}
	if strings.Join(events.events, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected events %v", events.events)
	}
}

func TestUpdateCampaignUnknownIsNotFound(t *testing.T) {
	store := memory.New()
	r := newCampaignRouter(store, nil)

	w := doRequest(r, http.MethodPut, "/campaigns/7", `{"name":"ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
	list, _ := store.ListCampaigns(context.Background())
	if len(list) != 0 {
		t.Fatalf("update must not create, got %d campaigns", len(list))
	}
}

func TestUpdateCampaignValidatesPresentFields(t *testing.T) {
	r := newCampaignRouter(memory.New(), nil)
	doRequest(r, http.MethodPost, "/campaigns", completeCampaign)

	w := doRequest(r, http.MethodPut, "/campaigns/1", `{"discountPercentage":150}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteCampaignIsIdempotent(t *testing.T) {
	events := &recordingPublisher{err: errors.New("broker down")}
	r := newCampaignRouter(memory.New(), events)
	doRequest(r, http.MethodPost, "/campaigns", completeCampaign)

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodDelete, "/campaigns/1", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete %d: expected 204 got %d", i, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("delete %d: expected empty body, got %q", i, w.Body.String())
		}
	}
	if w := doRequest(r, http.MethodGet, "/campaigns/1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

type failingStore struct {
	*memory.Store
}

var errStorageDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

func (f *failingStore) ListCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	return nil, errStorageDown
}

func (f *failingStore) CreateCampaign(ctx context.Context, draft *models.CampaignDraft) (*models.Campaign, error) {
	return nil, errStorageDown
}

func TestStorageFailureIsGeneric500(t *testing.T) {
	r := newCampaignRouter(&failingStore{Store: memory.New()}, nil)

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPost, completeCampaign},
	} {
		w := doRequest(r, tc.method, "/campaigns", tc.body)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500 got %d", tc.method, w.Code)
		}
		if strings.Contains(w.Body.String(), "10.0.0.5") {
			t.Fatalf("%s: driver error leaked: %s", tc.method, w.Body.String())
		}
	}
}

func TestCreateCampaignBodyTooLarge(t *testing.T) {
	h := NewCampaignHandler(NewBaseHandler(nil), memory.New(), nil)
	req := httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader([]byte(completeCampaign)))
	w := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(w, req.Body, 16)
	h.CreateCampaign(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d (%s)", w.Code, w.Body.String())
	}
}
