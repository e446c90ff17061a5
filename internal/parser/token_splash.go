package parser

import (
	"fmt"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/normalize"
)

const tokenSplashTag = "TOKEN_SPLASH"

// TokenSplash parses Bybit Token Splash announcements:
//
//	Token Splash: trade & share the pool!
//	Prize Pool: 2M SPLASH
//	Ends: 2025-07-01 10:00 (UTC)
//
// The end date is what this source lists on the calendar (rewards unlock
// then), so it becomes startAt.
type TokenSplash struct {
	Now func() time.Time
}

func (p *TokenSplash) Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft {
	lines := normalize.Lines(msg.Text)
	if !normalize.MatchTrigger(lines, ch.Trigger) {
		return nil
	}

	poolLine, ok := labeledLine(lines, "Prize Pool:", "Pool:", "Rewards:")
	if !ok {
		return nil
	}
	token := ticker(poolLine)
	if token == "" {
		return nil
	}

	endLine, ok := labeledLine(lines, "Ends:", "End Date:", "End:")
	if !ok {
		return nil
	}
	startAt, ok := resolverFor(ch, p.Now).Resolve(endLine)
	if !ok {
		return nil
	}

	return []model.EventDraft{{
		Title:        fmt.Sprintf("Token Splash: %s", token),
		Description:  normalize.Text(msg.Text),
		StartAt:      startAt,
		CoinName:     token,
		CoinQuantity: quantity(poolLine),
		SourceKey:    sourceKey(tokenSplashTag, token, startAt),
		TypeSlug:     "token_splash",
		Source:       tokenSplashTag,
		Link:         msg.Link,
		OmitLink:     ch.OmitLink,
		Timezone:     "UTC",
	}}
}
