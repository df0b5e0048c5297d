package pattern

import "regexp"

type Style string

const (
	StyleAssertive         Style = "assertive"
	StylePassive           Style = "passive"
	StyleAggressive        Style = "aggressive"
	StylePassiveAggressive Style = "passive-aggressive"
	StyleNeutral           Style = "neutral"
)

type indicatorGroup struct {
	name     string
	patterns []*regexp.Regexp
}

// styleGroups are evaluated in order. A tie for the lead yields StyleNeutral.
var styleGroups = []struct {
	style Style
	group indicatorGroup
}{
	{StyleAssertive, indicatorGroup{"assertive", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(bence|düşünüyorum|istiyorum|ihtiyacım var)`),
		regexp.MustCompile(`(?i)\b(i think|i feel|i want|i need)\b`),
		regexp.MustCompile(`(?i)(lütfen|konuşalım|\bplease\b|let's talk)`),
	}}},
	{StylePassive, indicatorGroup{"passive", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(fark etmez|farketmez|bilmem|önemli değil)`),
		regexp.MustCompile(`(?i)(galiba|sanırım|belki|\bmaybe\b|i guess)`),
		regexp.MustCompile(`(?i)(doesn't matter|i don't mind|up to you)`),
	}}},
	{StyleAggressive, indicatorGroup{"aggressive", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(kapa çeneni|defol|git başımdan|\bshut up\b|get lost)`),
		regexp.MustCompile(`(?i)(salak|aptal|gerizekalı|\bstupid\b|\bidiot\b)`),
		regexp.MustCompile(`!{2,}`),
		regexp.MustCompile(`\b[A-Z]{4,}\b`),
	}}},
	{StylePassiveAggressive, indicatorGroup{"passive-aggressive", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(tabii canım|sen bilirsin|nasıl istersen|ne güzel|çok komik)`),
		regexp.MustCompile(`(?i)(peki\.{2,}|neyse|\bwhatever\b|\bfine\.)`),
		regexp.MustCompile(`(🙂|🙄|😒)`),
	}}},
}

type CommunicationStyle struct {
	Style      Style    `json:"style"`
	Score      float64  `json:"score"` // share of the winning style's indicators present
	Indicators []string `json:"indicators"`
}

// AnalyzeCommunicationStyle picks the style whose indicator group has the
// most hits. No hits, or a tie for the lead, gives StyleNeutral.
func AnalyzeCommunicationStyle(text string) CommunicationStyle {
	out := CommunicationStyle{Style: StyleNeutral}
	best, bestHits, tied := StyleNeutral, 0, false
	bestTotal := 1

	for _, sg := range styleGroups {
		hits := 0
		for _, re := range sg.group.patterns {
			if m := re.FindString(text); m != "" {
				hits++
				out.Indicators = append(out.Indicators, sg.group.name+":"+m)
			}
		}
		switch {
		case hits > bestHits:
			best, bestHits, tied = sg.style, hits, false
			bestTotal = len(sg.group.patterns)
		case hits == bestHits && hits > 0:
			tied = true
		}
	}

	if bestHits == 0 || tied {
		return out
	}
	out.Style = best
	out.Score = float64(bestHits) / float64(bestTotal)
	return out
}

type IntimacyLevel string

const (
	IntimacyLow    IntimacyLevel = "low"
	IntimacyMedium IntimacyLevel = "medium"
	IntimacyHigh   IntimacyLevel = "high"
)

// Band boundaries for IntimacyLevel.
const (
	IntimacyMediumThreshold = 0.3
	IntimacyHighThreshold   = 0.6
)

var intimacyGroups = []indicatorGroup{
	{"affection", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(seviyorum|özledim|love you|miss you)`),
	}},
	{"pet-names", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(aşkım|canım|bebeğim|sevgilim|hayatım|bir tanem)`),
		regexp.MustCompile(`(?i)\b(babe|baby|honey|darling|sweetheart)\b`),
	}},
	{"vulnerability", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(hissediyorum|korkuyorum|sana güveniyorum|içimi dök)`),
		regexp.MustCompile(`(?i)\b(i feel|i'm scared|i trust you)\b`),
	}},
	{"future", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(birlikte|beraber|evlen|geleceğimiz)`),
		regexp.MustCompile(`(?i)\b(together|our future|marry)\b`),
	}},
	{"closeness", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(öpüyorum|öpücük|sarıl|yanında olmak)`),
		regexp.MustCompile(`(?i)\b(kiss|hug|cuddle)`),
		regexp.MustCompile(`(😘|🥰|😍|🤗)`),
	}},
}

type Intimacy struct {
	Score      float64       `json:"score"` // matched groups / all groups
	Level      IntimacyLevel `json:"level"`
	Indicators []string      `json:"indicators"` // names of matched groups
}

// AnalyzeIntimacy scores how many intimacy indicator groups appear in text.
func AnalyzeIntimacy(text string) Intimacy {
	var out Intimacy
	for _, g := range intimacyGroups {
		for _, re := range g.patterns {
			if re.MatchString(text) {
				out.Indicators = append(out.Indicators, g.name)
				break
			}
		}
	}
	out.Score = float64(len(out.Indicators)) / float64(len(intimacyGroups))
	out.Level = IntimacyLevelFor(out.Score)
	return out
}

func IntimacyLevelFor(score float64) IntimacyLevel {
	switch {
	case score >= IntimacyHighThreshold:
		return IntimacyHigh
	case score >= IntimacyMediumThreshold:
		return IntimacyMedium
	default:
		return IntimacyLow
	}
}
