package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/normalize"
)

const binanceTournamentTag = "BINANCE_TOURNAMENT"

// reParenTicker matches a parenthesised ticker, the most reliable token
// marker in exchange announcement titles: "Trade NEWT (NEWT) to Share ...".
var reParenTicker = regexp.MustCompile(`\(([A-Z][A-Z0-9]{1,9})\)`)

// reTitleDate matches the date portion of a title so prize amounts can be
// read without the date's digits winning the rightmost-number rule.
var reTitleDate = regexp.MustCompile(`(?i)\(?\b(?:\d{4}-\d{2}-\d{2}(?:\s+\d{1,2}:\d{2})?|(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,\s*\d{4})?(?:,?\s+\d{1,2}:\d{2})?)\)?`)

// BinanceTournament parses Binance announcement page titles for trading
// tournaments and competitions. The message text is the article title; the
// event date is whatever date the title itself carries.
type BinanceTournament struct {
	Now func() time.Time
}

func (p *BinanceTournament) Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft {
	lines := normalize.Lines(msg.Text)
	if !normalize.MatchTrigger(lines, ch.Trigger) {
		return nil
	}
	if len(lines) == 0 {
		return nil
	}
	title := lines[0]

	upper := strings.ToUpper(title)
	if !strings.Contains(upper, "TOURNAMENT") && !strings.Contains(upper, "TRADING COMPETITION") {
		return nil
	}
	// Delistings and suspension notices mention competitions in passing.
	if strings.Contains(upper, "DELIST") || strings.Contains(upper, "SUSPEND") {
		return nil
	}

	token := ""
	if m := reParenTicker.FindStringSubmatch(title); m != nil {
		token = m[1]
	}
	if token == "" {
		token = ticker(title)
	}

	startAt, ok := resolverFor(ch, p.Now).Resolve(title)
	if !ok {
		return nil
	}

	ident := token
	if ident == "" {
		ident = title
	}
	return []model.EventDraft{{
		Title:        title,
		StartAt:      startAt,
		CoinName:     token,
		CoinQuantity: quantity(reTitleDate.ReplaceAllString(title, "")),
		SourceKey:    sourceKey(binanceTournamentTag, ident, startAt),
		TypeSlug:     "tournament",
		Source:       binanceTournamentTag,
		Link:         msg.Link,
		OmitLink:     ch.OmitLink,
		Timezone:     "UTC",
	}}
}
