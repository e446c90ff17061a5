package parser

import (
	"fmt"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/normalize"
)

const okxBoostTag = "OKX_BOOST"

// OKXBoost parses OKX Boost campaign announcements:
//
//	OKX Boost is live!
//	Prize Pool: 500,000 XYZ
//	Duration: June 5, 14:00 – June 19, 14:00
//
// For this source the campaign END is the canonical start instant: the
// calendar marks when the boost settles, matching how these campaigns have
// always been listed. Do not "fix" this to the range start.
type OKXBoost struct {
	Now func() time.Time
}

func (p *OKXBoost) Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft {
	lines := normalize.Lines(msg.Text)
	if !normalize.MatchTrigger(lines, ch.Trigger) {
		return nil
	}

	poolLine, ok := labeledLine(lines, "Prize Pool:", "Reward:", "Rewards:", "Pool:")
	if !ok {
		return nil
	}
	token := ticker(poolLine)
	if token == "" {
		return nil
	}

	durationLine, ok := labeledLine(lines, "Duration:", "Period:", "Campaign Period:")
	if !ok {
		return nil
	}
	resolver := resolverFor(ch, p.Now)
	_, endText, ok := splitRange(durationLine)
	if !ok {
		endText = durationLine
	}
	startAt, ok := resolver.Resolve(endText)
	if !ok {
		return nil
	}

	return []model.EventDraft{{
		Title:        fmt.Sprintf("OKX Boost: %s", token),
		Description:  normalize.Text(msg.Text),
		StartAt:      startAt,
		CoinName:     token,
		CoinQuantity: quantity(poolLine),
		SourceKey:    sourceKey(okxBoostTag, token, startAt),
		TypeSlug:     "boost",
		Source:       okxBoostTag,
		Link:         msg.Link,
		OmitLink:     ch.OmitLink,
		Timezone:     "UTC",
	}}
}
