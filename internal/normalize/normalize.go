package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	reLineBreakTag = regexp.MustCompile(`(?i)<\s*(?:br|/p|/div|/li|/tr|/h[1-6])\s*/?>`)
	reTag          = regexp.MustCompile(`<[^<>]*>`)
	reEmoji        = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2190}-\x{21FF}\x{2300}-\x{27BF}\x{2B00}-\x{2BFF}\x{FE0E}\x{FE0F}\x{200D}\x{20E3}]`)
	reSpaces       = regexp.MustCompile(`[ \t\x{00A0}]+`)
)

// Lines turns raw HTML or plain text into trimmed, single-spaced,
// emoji-stripped lines with HTML entities decoded and empty lines removed.
// Malformed markup degrades to best-effort stripping; nothing here errors.
// Running the result through Lines again returns it unchanged.
func Lines(raw string) []string {
	s := reLineBreakTag.ReplaceAllString(raw, "\n")
	s = reTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	// Decoding can surface entity-encoded markup (&lt;b&gt;); strip again
	// so a single pass is already the fixed point.
	s = reLineBreakTag.ReplaceAllString(s, "\n")
	s = reTag.ReplaceAllString(s, "")
	s = reEmoji.ReplaceAllString(s, "")

	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = reSpaces.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Text is Lines joined back with newlines, for description fields.
func Text(raw string) string {
	return strings.Join(Lines(raw), "\n")
}
