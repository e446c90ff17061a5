package scrape

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

const samplePage = `
<html><body>
<div class="tgme_widget_message_wrap">
	<div class="tgme_widget_message" data-post="cryptoevents/101">
		<div class="tgme_widget_message_text js-message_text" dir="auto">Binance Alpha Airdrop!<br/>Token: <b>$OMNI</b><br/>Claim Date: 2025-06-05 12:00 (UTC)</div>
		<a href="https://t.me/cryptoevents/101"><time datetime="2025-06-01T10:00:00+00:00">10:00</time></a>
	</div>
</div>
<div class="tgme_widget_message_wrap">
	<div class="tgme_widget_message" data-post="cryptoevents/99">
		<div class="tgme_widget_message_text js-message_text" dir="auto">older post</div>
	</div>
</div>
<div class="tgme_widget_message_wrap">
	<div class="tgme_widget_message" data-post="cryptoevents/100">
		<div class="tgme_widget_message_service">joined the channel</div>
	</div>
</div>
</body></html>`

func TestParseChannelPage(t *testing.T) {
	messages := parseChannelPage(samplePage)

	// The service message without a text div is dropped; the rest come
	// back ascending by id.
	assert.Equal(t, 2, len(messages))
	assert.Equal(t, int64(99), messages[0].ID)
	assert.Equal(t, int64(101), messages[1].ID)

	m := messages[1]
	assert.Equal(t, "https://t.me/cryptoevents/101", m.Link)
	assert.NotEqual(t, nil, m.PostedAt)
	assert.Equal(t, 2025, m.PostedAt.Year())
	assert.Equal(t, true, len(m.Text) > 0)
}

func TestTelegramFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := NewTelegramClient()
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	messages, err := client.Fetch("cryptoevents")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(messages))
}

func TestTelegramFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewTelegramClient()
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Fetch("cryptoevents")

	assert.NotEqual(t, nil, err)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
