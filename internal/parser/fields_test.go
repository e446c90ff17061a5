package parser

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"
)

func TestQuantityRightmostWins(t *testing.T) {
	q := quantity("Pool: Win 1,000,000 SHIB and more")

	assert.NotEqual(t, nil, q)
	assert.Equal(t, true, q.Equal(decimal.NewFromInt(1000000)))
}

func TestTickerRightmostWins(t *testing.T) {
	assert.Equal(t, "SHIB", ticker("Pool: Win 1,000,000 SHIB and more"))
	assert.Equal(t, "OMNI", ticker("Token: $OMNI"))
	assert.Equal(t, "XYZ", ticker("500 ABC then 600 XYZ"))
	assert.Equal(t, "", ticker("no symbols here"))
}

func TestQuantityUnitSuffixes(t *testing.T) {
	cases := map[string]int64{
		"Prize Pool: 500K DOGE":  500_000,
		"Rewards: 2M SPLASH":     2_000_000,
		"Total: 1B PEPE":         1_000_000_000,
		"Reward: 1'500 OMNI":     1_500,
	}
	for line, want := range cases {
		q := quantity(line)
		assert.NotEqual(t, nil, q)
		assert.Equal(t, true, q.Equal(decimal.NewFromInt(want)))
	}
}

func TestQuantityUnparseable(t *testing.T) {
	assert.Equal(t, (*decimal.Decimal)(nil), quantity("Reward: generous"))
}

func TestLabeledLineFirstMatchWins(t *testing.T) {
	lines := []string{"intro", "Token: AAA", "Token: BBB"}

	v, ok := labeledLine(lines, "Token:")

	assert.Equal(t, true, ok)
	assert.Equal(t, "AAA", v)

	_, ok = labeledLine(lines, "Reward:")
	assert.Equal(t, false, ok)
}

func TestSourceKeyMinutePrecision(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 42, 12345, time.UTC)

	key := sourceKey("BINANCE_ALPHA", "tok", at)

	assert.Equal(t, "BINANCE_ALPHA|TOK|2025-01-01 00:00", key)
}

func TestSplitRange(t *testing.T) {
	a, b, ok := splitRange("2025-06-05 12:00 (UTC) – 2025-06-10 12:00 (UTC)")
	assert.Equal(t, true, ok)
	assert.Equal(t, "2025-06-05 12:00 (UTC)", a)
	assert.Equal(t, "2025-06-10 12:00 (UTC)", b)

	a, b, ok = splitRange("June 5, 14:00 to June 19, 14:00")
	assert.Equal(t, true, ok)
	assert.Equal(t, "June 5, 14:00", a)
	assert.Equal(t, "June 19, 14:00", b)

	_, _, ok = splitRange("no range at all")
	assert.Equal(t, false, ok)
}
