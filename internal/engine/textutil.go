package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// SplitLanguages parses a comma separated list of language codes,
// dropping blanks and duplicates while keeping order.
func SplitLanguages(s string) []string {
	return NormLanguages(strings.Split(s, ","))
}

// NormLanguages trims codes and removes blanks and duplicates.
// An empty result falls back to Cfg.DefaultLanguages, then "en".
func NormLanguages(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		if len(Cfg.DefaultLanguages) == 0 {
			return []string{"en"}
		}
		return append(out, Cfg.DefaultLanguages...)
	}
	return out
}
