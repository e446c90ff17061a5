package normalize

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLinesStripsMarkup(t *testing.T) {
	raw := `<div class="msg"><b>Binance Alpha</b> Airdrop<br/>Token: <a href="#">$OMNI</a><br>Reward:&nbsp;1,000 OMNI</div>`

	lines := Lines(raw)

	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "Binance Alpha Airdrop", lines[0])
	assert.Equal(t, "Token: $OMNI", lines[1])
	assert.Equal(t, "Reward: 1,000 OMNI", lines[2])
}

func TestLinesEntitiesAndEmoji(t *testing.T) {
	raw := "🔥 Rewards &amp; prizes 🎁\n\n   spread    out "

	lines := Lines(raw)

	assert.Equal(t, 2, len(lines))
	assert.Equal(t, "Rewards & prizes", lines[0])
	assert.Equal(t, "spread out", lines[1])
}

func TestLinesIdempotent(t *testing.T) {
	samples := []string{
		"<p>OKX Boost</p><p>Prize Pool: 500,000 XYZ</p>",
		"🚀 Launchpool\nStart: 05.06.2025 12:00\nEnd: 10.06.2025 12:00",
		"plain already-normal text",
		"Token Splash &gt; details &amp; rules",
		"Reward tiers &lt;b&gt;apply&lt;/b&gt; to all&lt;br&gt;participants",
	}

	for _, raw := range samples {
		once := Text(raw)
		twice := Text(once)
		assert.Equal(t, once, twice)
	}
}

func TestLinesStripsEntityEncodedMarkup(t *testing.T) {
	raw := "Reward tiers &lt;b&gt;apply&lt;/b&gt;&lt;br&gt;to all participants"

	lines := Lines(raw)

	assert.Equal(t, 2, len(lines))
	assert.Equal(t, "Reward tiers apply", lines[0])
	assert.Equal(t, "to all participants", lines[1])
}

func TestLinesMalformedHTML(t *testing.T) {
	raw := "<div><b>unclosed tags<br>still <i>readable"

	assert.Equal(t, []string{"unclosed tags", "still readable"}, Lines(raw))
}

func TestMatchTriggerWithinWindow(t *testing.T) {
	lines := Lines("Binance Alpha Airdrop!\nToken: OMNI")

	assert.Equal(t, true, MatchTrigger(lines, "binance alpha airdrop"))
	assert.Equal(t, true, MatchTrigger(lines, "Binance Alpha"))
	assert.Equal(t, false, MatchTrigger(lines, "OKX Boost"))
}

func TestMatchTriggerIgnoresPunctuation(t *testing.T) {
	lines := []string{"*** Token-Splash: rewards! ***"}

	assert.Equal(t, true, MatchTrigger(lines, "Token Splash"))
	assert.Equal(t, true, MatchTrigger([]string{"New Boost Event is live"}, "New Boost-Event!"))
}

func TestMatchTriggerLocality(t *testing.T) {
	body := strings.Repeat("filler line\n", 5) + "Binance Alpha Airdrop"
	lines := Lines(body)

	assert.Equal(t, false, MatchTrigger(lines, "Binance Alpha Airdrop"))
}

func TestMatchTriggerEmptyPhraseAlwaysMatches(t *testing.T) {
	assert.Equal(t, true, MatchTrigger(nil, ""))
	assert.Equal(t, true, MatchTrigger([]string{"anything"}, ""))
}
