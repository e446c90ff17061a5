package handler

type EventResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Type         string  `json:"type"`
	CoinName     string  `json:"coin_name,omitempty"`
	CoinQuantity string  `json:"coin_quantity,omitempty"`
	StartAt      string  `json:"start_at"`
	EndAt        *string `json:"end_at,omitempty"`
	Link         string  `json:"link,omitempty"`
	Timezone     string  `json:"timezone,omitempty"`
}

type FeedResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type PendingEventResponse struct {
	EventResponse
	Source    string `json:"source"`
	SourceKey string `json:"source_key,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type PendingFeedResponse struct {
	Events []PendingEventResponse `json:"events"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

type EditSuggestionResponse struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	Source    string            `json:"source"`
	Changes   map[string]string `json:"changes"`
	CreatedAt string            `json:"created_at"`
}

type PricesResponse struct {
	Prices map[string]float64 `json:"prices"`
}
