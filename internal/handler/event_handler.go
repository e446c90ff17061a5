package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

type EventStore interface {
	GetFeed(limit, offset int, typeSlug string, from *time.Time) ([]model.Event, error)
	GetFeedTotal() (int, error)
	GetEventByID(id uuid.UUID) (*model.Event, error)
	GetPendingFeed(limit, offset int) ([]model.PendingEvent, error)
	GetEditSuggestions(limit, offset int) ([]model.EditSuggestion, error)
}

type EventHandler struct {
	repository EventStore
}

func NewEventHandler(repository EventStore) *EventHandler {
	return &EventHandler{repository: repository}
}

func (h *EventHandler) GetFeed(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)
	typeSlug := c.Query("type")

	var from *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from parameter"})
			return
		}
		from = &parsed
	}

	events, err := h.repository.GetFeed(limit, offset, typeSlug, from)
	if err != nil {
		slog.Error("error fetching events feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetFeedTotal()
	if err != nil {
		slog.Error("error fetching events total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := FeedResponse{
		Events: make([]EventResponse, 0, len(events)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, e := range events {
		res.Events = append(res.Events, eventResponse(e))
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.repository.GetEventByID(id)
	if err != nil {
		slog.Error("error fetching event", "error", err, "event_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, eventResponse(*event))
}

func (h *EventHandler) GetPending(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	pending, err := h.repository.GetPendingFeed(limit, offset)
	if err != nil {
		slog.Error("error fetching pending events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := PendingFeedResponse{
		Events: make([]PendingEventResponse, 0, len(pending)),
		Limit:  limit,
		Offset: offset,
	}
	for _, p := range pending {
		res.Events = append(res.Events, pendingResponse(p))
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) GetSuggestions(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	suggestions, err := h.repository.GetEditSuggestions(limit, offset)
	if err != nil {
		slog.Error("error fetching edit suggestions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]EditSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		res = append(res, EditSuggestionResponse{
			ID:        s.ID.String(),
			EventID:   s.EventID.String(),
			Source:    s.Source,
			Changes:   s.Changes,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *EventHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetFeedTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func eventResponse(e model.Event) EventResponse {
	res := EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Type:        e.TypeSlug,
		CoinName:    e.CoinName,
		StartAt:     e.StartAt.UTC().Format(time.RFC3339),
		Link:        e.Link,
		Timezone:    e.Timezone,
	}
	if e.CoinQuantity != nil {
		res.CoinQuantity = e.CoinQuantity.String()
	}
	if e.EndAt != nil {
		endAt := e.EndAt.UTC().Format(time.RFC3339)
		res.EndAt = &endAt
	}
	return res
}

func pendingResponse(p model.PendingEvent) PendingEventResponse {
	res := PendingEventResponse{
		EventResponse: EventResponse{
			ID:          p.ID.String(),
			Title:       p.Title,
			Description: p.Description,
			Type:        p.TypeSlug,
			CoinName:    p.CoinName,
			StartAt:     p.StartAt.UTC().Format(time.RFC3339),
			Link:        p.Link,
			Timezone:    p.Timezone,
		},
		Source:    p.Source,
		SourceKey: p.SourceKey,
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.CoinQuantity != nil {
		res.CoinQuantity = p.CoinQuantity.String()
	}
	if p.EndAt != nil {
		endAt := p.EndAt.UTC().Format(time.RFC3339)
		res.EndAt = &endAt
	}
	return res
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		return 0
	}
	return offset
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			symbols = append(symbols, p)
		}
	}
	return symbols
}
