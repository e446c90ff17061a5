package parser

import (
	"fmt"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/normalize"
)

const binanceAlphaTag = "BINANCE_ALPHA"

// BinanceAlpha parses Binance Alpha airdrop announcements:
//
//	Binance Alpha Airdrop!
//	Token: $OMNI
//	Reward: 1,500 OMNI per participant
//	Claim Date: 2025-06-05 12:00 (UTC)
//
// The claim date is the canonical start for this source. Alpha airdrops
// have no public announcement page, so drafts omit the link.
type BinanceAlpha struct {
	Now func() time.Time
}

func (p *BinanceAlpha) Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft {
	lines := normalize.Lines(msg.Text)
	if !normalize.MatchTrigger(lines, ch.Trigger) {
		return nil
	}

	tokenLine, ok := labeledLine(lines, "Token:")
	if !ok {
		return nil
	}
	token := ticker(tokenLine)
	if token == "" {
		return nil
	}

	claimLine, ok := labeledLine(lines, "Claim Date:", "Claim Start:", "Claim:")
	if !ok {
		return nil
	}
	startAt, ok := resolverFor(ch, p.Now).Resolve(claimLine)
	if !ok {
		return nil
	}

	draft := model.EventDraft{
		Title:       fmt.Sprintf("Binance Alpha Airdrop: %s", token),
		Description: normalize.Text(msg.Text),
		StartAt:     startAt,
		CoinName:    token,
		SourceKey:   sourceKey(binanceAlphaTag, token, startAt),
		TypeSlug:    "airdrop",
		Source:      binanceAlphaTag,
		OmitLink:    true,
		Timezone:    "UTC",
	}
	if rewardLine, ok := labeledLine(lines, "Reward:", "Airdrop:", "Amount:"); ok {
		draft.CoinQuantity = quantity(rewardLine)
	}
	return []model.EventDraft{draft}
}
