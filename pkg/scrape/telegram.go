package scrape

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Message is one scraped post, prior to any normalization.
type Message struct {
	ID       int64
	Text     string
	Link     string
	PostedAt *time.Time
}

const telegramUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	reTelegramPost = regexp.MustCompile(`^([A-Za-z0-9_]+)/(\d+)"`)
	reMessageText  = regexp.MustCompile(`(?s)<div class="tgme_widget_message_text[^"]*"[^>]*>(.*?)</div>`)
	reMessageTime  = regexp.MustCompile(`<time datetime="([^"]+)"`)
)

// TelegramClient scrapes a public channel's t.me/s preview page. The markup
// is third-party and unversioned; extraction is pattern-based and
// best-effort, anything that does not match is dropped.
type TelegramClient struct {
	httpClient *http.Client
}

func NewTelegramClient() *TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns the channel's visible messages in ascending id order. The
// message text keeps its raw HTML; the pipeline normalizes it later.
func (c *TelegramClient) Fetch(username string) ([]Message, error) {
	url := fmt.Sprintf("https://t.me/s/%s", username)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("telegram request: %w", err)
	}
	req.Header.Set("User-Agent", telegramUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram fetch %s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram fetch %s: status %d", username, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram read %s: %w", username, err)
	}

	return parseChannelPage(string(body)), nil
}

func parseChannelPage(page string) []Message {
	var messages []Message

	// Each message block opens with data-post="channel/id"; splitting on
	// that attribute isolates one message per chunk.
	chunks := strings.Split(page, `data-post="`)
	for _, chunk := range chunks[1:] {
		m := reTelegramPost.FindStringSubmatch(chunk)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			continue
		}

		text := ""
		if tm := reMessageText.FindStringSubmatch(chunk); tm != nil {
			text = tm[1]
		}
		if text == "" {
			continue
		}

		msg := Message{
			ID:   id,
			Text: text,
			Link: fmt.Sprintf("https://t.me/%s/%d", m[1], id),
		}
		if tt := reMessageTime.FindStringSubmatch(chunk); tt != nil {
			if at, err := time.Parse(time.RFC3339, tt[1]); err == nil {
				utc := at.UTC()
				msg.PostedAt = &utc
			}
		}
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages
}
