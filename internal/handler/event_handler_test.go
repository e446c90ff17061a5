package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/google/uuid"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

type fakeStore struct {
	feed        []model.Event
	feedTotal   int
	event       *model.Event
	pending     []model.PendingEvent
	suggestions []model.EditSuggestion
	err         error
}

func (f *fakeStore) GetFeed(limit, offset int, typeSlug string, from *time.Time) ([]model.Event, error) {
	return f.feed, f.err
}

func (f *fakeStore) GetFeedTotal() (int, error) {
	return f.feedTotal, f.err
}

func (f *fakeStore) GetEventByID(id uuid.UUID) (*model.Event, error) {
	return f.event, f.err
}

func (f *fakeStore) GetPendingFeed(limit, offset int) ([]model.PendingEvent, error) {
	return f.pending, f.err
}

func (f *fakeStore) GetEditSuggestions(limit, offset int) ([]model.EditSuggestion, error) {
	return f.suggestions, f.err
}

type fakePrices struct {
	prices map[string]float64
}

func (f *fakePrices) Prices(ctx context.Context, symbols []string) map[string]float64 {
	return f.prices
}

func newTestRouter(store EventStore, prices PriceProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEventHandler(store)
	r.GET("/events", h.GetFeed)
	r.GET("/events/:id", h.GetEvent)
	r.GET("/pending", h.GetPending)
	r.GET("/suggestions", h.GetSuggestions)
	r.GET("/health", h.GetHealth)
	if prices != nil {
		p := NewPriceHandler(prices)
		r.GET("/prices", p.GetPrices)
	}
	return r
}

func TestGetFeed_ReturnsEvents(t *testing.T) {
	startAt := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	store := &fakeStore{
		feed: []model.Event{
			{ID: uuid.New(), Title: "TOK Airdrop", TypeSlug: "airdrop", CoinName: "TOK", StartAt: startAt},
		},
		feedTotal: 1,
	}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events?limit=10&offset=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, len(res.Events))
	assert.Equal(t, "TOK Airdrop", res.Events[0].Title)
	assert.Equal(t, "airdrop", res.Events[0].Type)
	assert.Equal(t, "2025-06-04T10:00:00Z", res.Events[0].StartAt)
}

func TestGetFeed_DBError(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetFeed_DefaultLimit(t *testing.T) {
	store := &fakeStore{feed: []model.Event{}}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events", nil)
	r.ServeHTTP(w, req)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 50, res.Limit)
	assert.Equal(t, 0, res.Offset)
}

func TestGetFeed_LimitClamped(t *testing.T) {
	store := &fakeStore{feed: []model.Event{}}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events?limit=5000", nil)
	r.ServeHTTP(w, req)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 200, res.Limit)
}

func TestGetFeed_InvalidFrom(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events?from=yesterday", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEvent_Found(t *testing.T) {
	id := uuid.New()
	endAt := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{
		event: &model.Event{
			ID:       id,
			Title:    "SHIB Tournament",
			TypeSlug: "tournament",
			StartAt:  time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC),
			EndAt:    &endAt,
		},
	}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/"+id.String(), nil)
	r.ServeHTTP(w, req)

	var res EventResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, id.String(), res.ID)
	assert.Equal(t, "SHIB Tournament", res.Title)
	assert.Equal(t, "2025-06-10T00:00:00Z", *res.EndAt)
}

func TestGetEvent_NotFound(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEvent_InvalidID(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/aaa", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPending_ReturnsEvents(t *testing.T) {
	store := &fakeStore{
		pending: []model.PendingEvent{
			{
				ID:        uuid.New(),
				Title:     "TOK Airdrop",
				TypeSlug:  "airdrop",
				Source:    "binance_alpha",
				SourceKey: "BINANCE_ALPHA|TOK|2025-06-04 10:00",
				StartAt:   time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/pending", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res PendingFeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.Events))
	assert.Equal(t, "binance_alpha", res.Events[0].Source)
	assert.Equal(t, "BINANCE_ALPHA|TOK|2025-06-04 10:00", res.Events[0].SourceKey)
}

func TestGetSuggestions_ReturnsChanges(t *testing.T) {
	store := &fakeStore{
		suggestions: []model.EditSuggestion{
			{
				ID:        uuid.New(),
				EventID:   uuid.New(),
				Source:    "okx_boost",
				Changes:   map[string]string{"description": "updated prize pool"},
				CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/suggestions", nil)
	r.ServeHTTP(w, req)

	var res []EditSuggestionResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, "updated prize pool", res[0].Changes["description"])
}

func TestGetPrices_ReturnsPrices(t *testing.T) {
	prices := &fakePrices{prices: map[string]float64{"BTC": 65000.5}}
	r := newTestRouter(&fakeStore{}, prices)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/prices?symbols=BTC,ETH", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res PricesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 65000.5, res.Prices["BTC"])
}

func TestGetPrices_MissingSymbols(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/prices", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHealth_Healthy(t *testing.T) {
	store := &fakeStore{feedTotal: 0}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}

func TestGetHealth_Unhealthy(t *testing.T) {
	store := &fakeStore{err: errors.New("DB down")}
	r := newTestRouter(store, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "unhealthy", res["status"])
}
