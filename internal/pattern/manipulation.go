package pattern

import "regexp"

type ManipulationType string

const (
	GuiltTripping      ManipulationType = "guilt-tripping"
	Gaslighting        ManipulationType = "gaslighting"
	EmotionalBlackmail ManipulationType = "emotional-blackmail"
	SilentTreatment    ManipulationType = "silent-treatment"
	Controlling        ManipulationType = "controlling"
	Victimhood         ManipulationType = "victimhood"
	Possessiveness     ManipulationType = "possessiveness"
	PassiveAggression  ManipulationType = "passive-aggression"
	Egocentric         ManipulationType = "egocentric"
)

// ManipulationTypes lists every type in detection order.
var ManipulationTypes = []ManipulationType{
	GuiltTripping, Gaslighting, EmotionalBlackmail, SilentTreatment, Controlling,
	Victimhood, Possessiveness, PassiveAggression, Egocentric,
}

type manipulationPattern struct {
	re     *regexp.Regexp
	kind   ManipulationType
	weight float64
}

var manipulationPatterns = []manipulationPattern{
	{regexp.MustCompile(`(?i)senin yüzünden`), GuiltTripping, 0.6},
	{regexp.MustCompile(`(?i)(senin için|bunca) (neler|her şeyi) yaptım`), GuiltTripping, 0.7},
	{regexp.MustCompile(`(?i)bunu bana nasıl yaparsın`), GuiltTripping, 0.6},
	{regexp.MustCompile(`(?i)after (all|everything) i('ve| have) done`), GuiltTripping, 0.7},
	{regexp.MustCompile(`(?i)because of you`), GuiltTripping, 0.5},

	{regexp.MustCompile(`(?i)öyle bir şey (olmadı|demedim|söylemedim)`), Gaslighting, 0.8},
	{regexp.MustCompile(`(?i)yanlış hatırlıyorsun`), Gaslighting, 0.8},
	{regexp.MustCompile(`(?i)(abartıyorsun|kafanda kuruyorsun|hayal görüyorsun)`), Gaslighting, 0.7},
	{regexp.MustCompile(`(?i)(delirmişsin|deli misin)`), Gaslighting, 0.7},
	{regexp.MustCompile(`(?i)(that never happened|you're imagining|you are imagining|you're overreacting)`), Gaslighting, 0.8},

	{regexp.MustCompile(`(?i)beni (gerçekten )?sev(iyorsan|seydin)`), EmotionalBlackmail, 0.8},
	{regexp.MustCompile(`(?i)beni (terk|bırak)(ırsan|arsan|ersen)`), EmotionalBlackmail, 0.9},
	{regexp.MustCompile(`(?i)kendime bir şey yaparım`), EmotionalBlackmail, 1.0},
	{regexp.MustCompile(`(?i)pişman olursun`), EmotionalBlackmail, 0.7},
	{regexp.MustCompile(`(?i)if you (really )?loved me`), EmotionalBlackmail, 0.8},

	{regexp.MustCompile(`(?i)seninle konuşmuyorum`), SilentTreatment, 0.6},
	{regexp.MustCompile(`(?i)konuşmak istemiyorum`), SilentTreatment, 0.5},
	{regexp.MustCompile(`(?i)beni (arama|rahatsız etme)`), SilentTreatment, 0.5},
	{regexp.MustCompile(`(?i)(i'm not talking to you|leave me alone)`), SilentTreatment, 0.5},

	{regexp.MustCompile(`(?i)ner(e)?desin`), Controlling, 0.4},
	{regexp.MustCompile(`(?i)kiminle(ydin| konuşuyorsun| birliktesin)`), Controlling, 0.6},
	{regexp.MustCompile(`(?i)izin (vermiyorum|vermem)`), Controlling, 0.7},
	{regexp.MustCompile(`(?i)telefonunu (göster|ver)`), Controlling, 0.8},
	{regexp.MustCompile(`(?i)(who were you with|you can't go|you're not allowed)`), Controlling, 0.7},

	{regexp.MustCompile(`(?i)kimse beni (sevmiyor|anlamıyor)`), Victimhood, 0.5},
	{regexp.MustCompile(`(?i)(hep ben mi|zavallı ben|bana hep böyle)`), Victimhood, 0.5},
	{regexp.MustCompile(`(?i)(nobody cares about me|always my fault)`), Victimhood, 0.5},

	{regexp.MustCompile(`(?i)sen benimsin`), Possessiveness, 0.6},
	{regexp.MustCompile(`(?i)başka(sıyla|larıyla) konuşma`), Possessiveness, 0.8},
	{regexp.MustCompile(`(?i)(sadece benim|kimseyle görüşme)`), Possessiveness, 0.7},
	{regexp.MustCompile(`(?i)you('re| are) mine`), Possessiveness, 0.6},

	{regexp.MustCompile(`(?i)(sen bilirsin|nasıl istersen|tabii canım)`), PassiveAggression, 0.4},
	{regexp.MustCompile(`(?i)peki\.{2,}`), PassiveAggression, 0.3},
	{regexp.MustCompile(`(?i)\b(whatever|fine then)\b`), PassiveAggression, 0.4},

	{regexp.MustCompile(`(?i)ben haklıyım`), Egocentric, 0.4},
	{regexp.MustCompile(`(?i)benim dediğim olur`), Egocentric, 0.6},
	{regexp.MustCompile(`(?i)(i'm always right|it's all about me)`), Egocentric, 0.5},
}

type Manipulation struct {
	Score     float64 `json:"score"` // [0, 1]
	Instances []Match `json:"instances"`
}

// DetectManipulation runs text against every manipulation pattern. Each
// match adds its pattern's weight; the total is clamped to 1, so a few
// different tactics in one message saturate quickly.
func DetectManipulation(text string) Manipulation {
	var out Manipulation
	total := 0.0
	for _, p := range manipulationPatterns {
		for _, m := range p.re.FindAllString(text, -1) {
			out.Instances = append(out.Instances, Match{
				Text:   m,
				Type:   string(p.kind),
				Weight: p.weight,
			})
			total += p.weight
		}
	}
	if total > 1 {
		total = 1
	}
	out.Score = total
	return out
}
