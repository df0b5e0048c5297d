// Package pattern holds the per-message heuristics: keyword sentiment and
// the regex detectors for manipulation, apologies, love expressions,
// agreement, communication style and intimacy. Every function is pure and
// safe for concurrent use.
package pattern

import (
	"strings"
)

type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
	Neutral  Polarity = "neutral"
)

type Sentiment struct {
	Score             float64  `json:"score"` // [-1, 1]
	Dominant          Polarity `json:"dominant"`
	PositiveWordCount int      `json:"positiveWordCount"`
	NegativeWordCount int      `json:"negativeWordCount"`
	NeutralWordCount  int      `json:"neutralWordCount"`
}

// Keywords are matched as substrings of each token, so "seviyorum" also
// counts inside "seviyorumm" and "iyi" inside "iyiyim".
var (
	positiveKeywords = []string{
		"güzel", "harika", "mükemmel", "süper", "iyi", "sevgi", "seviyorum", "sevindim",
		"mutlu", "teşekkür", "sağol", "bravo", "tebrik", "muhteşem", "şahane",
		"aşk", "canım", "tatlı", "hoş", "keyif", "eğlen", "haha", "başar", "gurur",
		"love", "good", "great", "nice", "thanks", "super", "cool", "awesome",
	}
	negativeKeywords = []string{
		"kötü", "berbat", "üzgün", "üzül", "sinir", "kızgın", "nefret", "korku", "mutsuz",
		"ağla", "yalan", "bıktım", "rezil", "saçma", "aptal", "salak", "sorun", "acı",
		"yorgun", "kahret", "lanet", "iğrenç", "yazık", "kırıklığı",
		"hate", "bad", "sad", "angry", "worst", "problem",
	}
	neutralKeywords = []string{
		"tamam", "peki", "evet", "hayır", "belki", "normal", "bilmiyorum", "neyse",
		"olur", "hmm", "şey", "okay", "maybe",
	}
)

// tokenPunctuation is stripped from every token before matching.
const tokenPunctuation = `.,!?;:"'()[]{}…`

var turkishCapitalI = strings.NewReplacer("İ", "i")

func normalizeText(text string) string {
	return strings.ToLower(turkishCapitalI.Replace(text))
}

func stripPunctuation(tok string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(tokenPunctuation, r) {
			return -1
		}
		return r
	}, tok)
}

func containsAny(tok string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(tok, k) {
			return true
		}
	}
	return false
}

// AnalyzeSentiment scores text with a bag-of-words keyword heuristic.
// Each token lands in at most one bucket: positive, then negative, then
// neutral. Tokens matching no list are ignored.
func AnalyzeSentiment(text string) Sentiment {
	var s Sentiment
	for _, raw := range strings.Fields(normalizeText(text)) {
		tok := stripPunctuation(raw)
		if tok == "" {
			continue
		}
		switch {
		case containsAny(tok, positiveKeywords):
			s.PositiveWordCount++
		case containsAny(tok, negativeKeywords):
			s.NegativeWordCount++
		case containsAny(tok, neutralKeywords):
			s.NeutralWordCount++
		}
	}

	if total := s.PositiveWordCount + s.NegativeWordCount; total > 0 {
		s.Score = float64(s.PositiveWordCount-s.NegativeWordCount) / float64(total)
	}

	s.Dominant = Neutral
	switch {
	case s.PositiveWordCount > s.NegativeWordCount && s.PositiveWordCount > s.NeutralWordCount:
		s.Dominant = Positive
	case s.NegativeWordCount > s.PositiveWordCount && s.NegativeWordCount > s.NeutralWordCount:
		s.Dominant = Negative
	}
	return s
}
