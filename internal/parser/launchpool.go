package parser

import (
	"fmt"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/normalize"
)

const launchpoolTag = "LAUNCHPOOL"

// Launchpool parses launchpool announcements in both formats the channel
// has used over time.
//
// Legacy posts carry dotted wall-clock times in the channel's zone:
//
//	Launchpool: stake to farm NEWT
//	Start: 05.06.2025 12:00
//	End: 10.06.2025 12:00
//
// Newer posts carry a UTC-tagged ISO duration line:
//
//	Launchpool: NEWT farming
//	Duration: 2025-06-05 12:00 (UTC) – 2025-06-10 12:00 (UTC)
//
// Either way startAt is the range start and endAt the range end.
type Launchpool struct {
	Legacy bool
	Now    func() time.Time
}

func (p *Launchpool) Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft {
	lines := normalize.Lines(msg.Text)
	if !normalize.MatchTrigger(lines, ch.Trigger) {
		return nil
	}
	if len(lines) == 0 {
		return nil
	}

	token := ""
	if tokenLine, ok := labeledLine(lines, "Token:", "Farm:"); ok {
		token = ticker(tokenLine)
	}
	if token == "" {
		token = ticker(lines[0])
	}
	if token == "" {
		return nil
	}

	resolver := resolverFor(ch, p.Now)

	var startText, endText string
	if p.Legacy {
		if startLine, ok := labeledLine(lines, "Start:", "Starts:"); ok {
			startText = startLine
			endText, _ = labeledLine(lines, "End:", "Ends:")
		}
	} else if durationLine, ok := labeledLine(lines, "Duration:", "Period:"); ok {
		startText, endText, _ = splitRange(durationLine)
	}
	if startText == "" {
		return nil
	}
	startAt, ok := resolver.Resolve(startText)
	if !ok {
		return nil
	}

	draft := model.EventDraft{
		Title:       fmt.Sprintf("Launchpool: %s", token),
		Description: normalize.Text(msg.Text),
		StartAt:     startAt,
		CoinName:    token,
		SourceKey:   sourceKey(launchpoolTag, token, startAt),
		TypeSlug:    "launchpool",
		Source:      launchpoolTag,
		Link:        msg.Link,
		OmitLink:    ch.OmitLink,
		Timezone:    timezoneLabel(ch),
	}
	if endText != "" {
		if endAt, ok := resolver.Resolve(endText); ok {
			draft.EndAt = &endAt
		}
	}
	if rewardLine, ok := labeledLine(lines, "Reward:", "Rewards:", "Pool:"); ok {
		draft.CoinQuantity = quantity(rewardLine)
	}
	return []model.EventDraft{draft}
}

func timezoneLabel(ch config.Channel) string {
	if ch.Timezone != "" {
		return ch.Timezone
	}
	return "UTC"
}
