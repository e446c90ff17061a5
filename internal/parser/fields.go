package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// reNumber matches a run of digits with optional thousand separators,
	// a decimal part and a K/M/B unit suffix.
	reNumber = regexp.MustCompile(`(\d(?:[\d,'\x{2009} ]*\d)?(?:\.\d+)?)\s*([KMBkmb])?\b`)

	// reTicker matches an uppercase-alnum token of length >= 2, optionally
	// $-prefixed. Single capital letters and mixed-case words do not qualify.
	reTicker = regexp.MustCompile(`\$?\b[A-Z][A-Z0-9]{1,14}\b`)
)

// tickerStop lists all-caps words that appear in announcement copy but are
// never token symbols.
var tickerStop = map[string]bool{
	"UTC": true, "USD": true, "APR": true, "APY": true, "TBA": true,
	"AND": true, "THE": true, "FOR": true, "NEW": true, "WIN": true,
	"OKX": true, "AMA": true, "NFT": true, "TGE": true, "END": true,
	"POOL": true, "TOTAL": true, "PRIZE": true, "REWARD": true,
}

// quantity extracts the numeric amount from a composite line such as
// "Pool: Win 1,000,000 SHIB and more". The last run of digits on the line
// wins, since descriptive text and percentages usually come first. Returns
// nil when nothing on the line parses as a finite number.
func quantity(line string) *decimal.Decimal {
	matches := reNumber.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	m := matches[len(matches)-1]

	raw := strings.NewReplacer(",", "", "'", "", " ", "", " ", "").Replace(m[1])
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		d = d.Shift(3)
	case "M":
		d = d.Shift(6)
	case "B":
		d = d.Shift(9)
	}
	return &d
}

// ticker extracts the token symbol from a composite line: the last
// qualifying uppercase token wins, with the $ prefix stripped.
func ticker(line string) string {
	matches := reTicker.FindAllString(line, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		t := strings.TrimPrefix(matches[i], "$")
		if tickerStop[t] {
			continue
		}
		return t
	}
	return ""
}

// labeledLine finds the first line starting with any of the given labels
// (case-insensitive) and returns the remainder of that line. First matching
// line wins; later occurrences of a label are ignored.
func labeledLine(lines []string, labels ...string) (string, bool) {
	for _, line := range lines {
		for _, label := range labels {
			if len(line) >= len(label) && strings.EqualFold(line[:len(label)], label) {
				return strings.TrimSpace(line[len(label):]), true
			}
		}
	}
	return "", false
}

// sourceKey builds the dedup identity for a draft: source tag, token (or
// title), and the canonical time at minute precision. Two scrapes of the
// same announcement must produce a byte-identical key regardless of
// cosmetic text differences.
func sourceKey(tag, ident string, at time.Time) string {
	return fmt.Sprintf("%s|%s|%s", tag, strings.ToUpper(strings.TrimSpace(ident)), at.UTC().Format("2006-01-02 15:04"))
}

// splitRange breaks a "start – end" duration line into its two halves.
// Hyphens inside dates ("2025-06-05") never act as separators; only
// spaced dashes and the word "to" do.
func splitRange(s string) (string, string, bool) {
	for _, sep := range []string{" – ", " — ", " - ", " to ", "–", "—"} {
		if i := strings.Index(s, sep); i > 0 {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
		}
	}
	return "", "", false
}
