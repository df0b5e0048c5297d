package parse

import (
	"strings"
	"unicode/utf8"
)

// emojiRanges covers the common emoji blocks. Sequences built from several
// code points (skin tones, ZWJ families) count once per listed code point,
// modifiers and joiners themselves are not counted.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F900, 0x1F9FF}, // supplemental symbols & pictographs
	{0x1FA70, 0x1FAFF}, // symbols & pictographs extended-A
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// isJoiner reports variation selectors and the zero-width joiner that glue
// emoji sequences together.
func isJoiner(r rune) bool {
	return r == 0xFE0E || r == 0xFE0F || r == 0x200D
}

// IsEmoji reports whether r falls into one of the recognised emoji ranges.
func IsEmoji(r rune) bool {
	if isSkinTone(r) {
		return false
	}
	for _, rg := range emojiRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// Emojis returns every emoji rune in s as a separate string, in order.
func Emojis(s string) []string {
	var out []string
	for _, r := range s {
		if IsEmoji(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// CountEmoji counts the emoji runes in s.
func CountEmoji(s string) int {
	n := 0
	for _, r := range s {
		if IsEmoji(r) {
			n++
		}
	}
	return n
}

// StripEmoji removes emoji runes from s, along with their modifiers and
// joiners.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if IsEmoji(r) || isSkinTone(r) || isJoiner(r) {
			return -1
		}
		return r
	}, s)
}

// CountWords counts whitespace separated tokens after emoji are removed, so
// an emoji-only line has no words.
func CountWords(s string) int {
	return len(strings.Fields(StripEmoji(s)))
}

// CountCharacters counts the runes in s.
func CountCharacters(s string) int {
	return utf8.RuneCountInString(s)
}
