package normalize

import (
	"regexp"
	"strings"
)

// triggerWindow bounds trigger matching to the opening of a message so a
// phrase quoted later in the body cannot misclassify it.
const triggerWindow = 5

var rePunct = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

// MatchTrigger reports whether the trigger phrase occurs within the first
// five normalized lines. Matching is case-insensitive and ignores
// punctuation on both sides. An empty phrase always matches; catch-all
// channels configure no trigger.
func MatchTrigger(lines []string, phrase string) bool {
	if phrase == "" {
		return true
	}
	n := len(lines)
	if n > triggerWindow {
		n = triggerWindow
	}
	head := canonical(strings.Join(lines[:n], " "))
	return strings.Contains(head, canonical(phrase))
}

func canonical(s string) string {
	s = strings.ToLower(s)
	s = rePunct.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
