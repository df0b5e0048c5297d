package pattern

import "regexp"

// Match is one regex hit inside a message.
type Match struct {
	Text   string  `json:"text"`
	Type   string  `json:"type,omitempty"`
	Weight float64 `json:"weight,omitempty"`
}

// Detection is the result of a plain pattern-list detector.
type Detection struct {
	Found     bool    `json:"found"`
	Instances []Match `json:"instances"`
}

func findAll(text string, patterns []*regexp.Regexp) []Match {
	var out []Match
	for _, re := range patterns {
		for _, m := range re.FindAllString(text, -1) {
			out = append(out, Match{Text: m})
		}
	}
	return out
}

var apologyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)özür dilerim`),
	regexp.MustCompile(`(?i)özür dile(r|mek istiyorum)`),
	regexp.MustCompile(`(?i)affet(ir misin|in| beni)?`),
	regexp.MustCompile(`(?i)kusura bakma`),
	regexp.MustCompile(`(?i)(hata bendeydi|hata benim|hatalıyım)`),
	regexp.MustCompile(`(?i)\b(sorry|i apologi[sz]e|my bad|forgive me)\b`),
	regexp.MustCompile(`(?i)\bpardon\b`),
}

// DetectApologies reports every apology phrase in text.
func DetectApologies(text string) Detection {
	inst := findAll(text, apologyPatterns)
	return Detection{Found: len(inst) > 0, Instances: inst}
}

var lovePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)seni (çok |cok )?seviyorum`),
	regexp.MustCompile(`(?i)(i )?love you`),
	regexp.MustCompile(`(?i)(aşkım|sevgilim|bir tanem|hayatım|bebeğim)`),
	regexp.MustCompile(`(?i)(seni )?(çok )?özledim`),
	regexp.MustCompile(`(?i)\bmiss you\b`),
	regexp.MustCompile(`(?i)(sana )?tapıyorum`),
	regexp.MustCompile(`(❤️|❤|😍|🥰|😘|💕|💖|💗|💘)`),
}

var iLoveYouRe = regexp.MustCompile(`(?i)(seni (çok |cok )?seviyorum|i love you)`)

type LoveDetection struct {
	Found            bool    `json:"found"`
	ContainsILoveYou bool    `json:"containsILoveYou"`
	Instances        []Match `json:"instances"`
}

// DetectLoveExpressions reports affectionate phrases; ContainsILoveYou is
// set when one of them is an explicit "I love you".
func DetectLoveExpressions(text string) LoveDetection {
	inst := findAll(text, lovePatterns)
	out := LoveDetection{Found: len(inst) > 0, Instances: inst}
	for _, m := range inst {
		if iLoveYouRe.MatchString(m.Text) {
			out.ContainsILoveYou = true
			break
		}
	}
	return out
}

var (
	agreementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(haklısın|katılıyorum|aynen|kesinlikle|aynı fikirdeyim)`),
		regexp.MustCompile(`(?i)\b(i agree|you're right|exactly|absolutely)\b`),
	}
	disagreementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(katılmıyorum|yanılıyorsun|hiç sanmıyorum|alakası yok|saçmalama)`),
		regexp.MustCompile(`(?i)\b(i disagree|you're wrong|no way|not true)\b`),
	}
)

type Agreement struct {
	Agrees    bool `json:"agrees"`
	Disagrees bool `json:"disagrees"`
}

// DetectAgreement flags explicit agreement and disagreement markers. A
// message may carry both.
func DetectAgreement(text string) Agreement {
	return Agreement{
		Agrees:    len(findAll(text, agreementPatterns)) > 0,
		Disagrees: len(findAll(text, disagreementPatterns)) > 0,
	}
}
