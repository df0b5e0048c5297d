// Package analyze folds a parsed chat into a single ChatStats snapshot.
package analyze

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/pattern"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNoMessages is returned when there is nothing to analyze.
var ErrNoMessages = errors.New("no messages to analyze")

// maxResponseGap bounds a response sample; longer silences are new sessions,
// not replies.
const maxResponseGap = 24 * time.Hour

type Options struct {
	SessionGap            time.Duration // silence after which a message starts a new conversation
	TopEmojis             int           // per participant
	GlobalTopEmojis       int
	ManipulationExamples  int     // retained per participant
	ManipulationThreshold float64 // minimum score for a retained example
	ExampleLimit          int     // apology and love examples per participant
}

func DefaultOptions() Options {
	return Options{
		SessionGap:            8 * time.Hour,
		TopEmojis:             5,
		GlobalTopEmojis:       10,
		ManipulationExamples:  5,
		ManipulationThreshold: 0.3,
		ExampleLimit:          5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SessionGap <= 0 {
		o.SessionGap = d.SessionGap
	}
	if o.TopEmojis <= 0 {
		o.TopEmojis = d.TopEmojis
	}
	if o.GlobalTopEmojis <= 0 {
		o.GlobalTopEmojis = d.GlobalTopEmojis
	}
	if o.ManipulationExamples <= 0 {
		o.ManipulationExamples = d.ManipulationExamples
	}
	if o.ManipulationThreshold <= 0 {
		o.ManipulationThreshold = d.ManipulationThreshold
	}
	if o.ExampleLimit <= 0 {
		o.ExampleLimit = d.ExampleLimit
	}
	return o
}

// AnalyzeChat runs Analyze with DefaultOptions.
func AnalyzeChat(messages []parse.ChatMessage) (*ChatStats, error) {
	return Analyze(messages, DefaultOptions())
}

type timedMessage struct {
	parse.ChatMessage
	at time.Time
	ok bool // at holds a valid timestamp
}

// participantAcc carries the raw samples that are folded into a
// ParticipantStats once the pass is over.
type participantAcc struct {
	stats           *ParticipantStats
	emojiOrder      []string
	responses       []float64
	sentiment       []float64
	manipulation    []float64
	intimacy        []float64
	topManipulation *topExamples
	activeDates     map[string]struct{}
}

// Analyze computes the aggregate statistics for one chat. The only error is
// ErrNoMessages; malformed timestamps are excluded from time based figures
// instead of failing the run.
func Analyze(messages []parse.ChatMessage, opts Options) (*ChatStats, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	opts = opts.withDefaults()

	sorted := sortMessages(messages)

	stats := &ChatStats{
		ParticipantStats:   orderedmap.New[string, *ParticipantStats](),
		MessagesByDate:     orderedmap.New[string, int](),
		MostActiveHour:     -1,
		MediaStats:         make(map[string]int),
		ManipulationByType: make(map[string]int),
	}
	stats.StartDate, stats.EndDate, stats.Duration = dateRange(sorted)

	plain := make([]parse.ChatMessage, len(sorted))
	for i, m := range sorted {
		plain[i] = m.ChatMessage
	}
	accs := make(map[string]*participantAcc)
	for _, name := range parse.Participants(plain) {
		ps := newParticipantStats(name)
		stats.ParticipantStats.Set(name, ps)
		accs[name] = &participantAcc{
			stats:           ps,
			topManipulation: newTopExamples(opts.ManipulationExamples),
			activeDates:     make(map[string]struct{}),
		}
	}

	globalEmoji := make(map[string]int)
	var globalEmojiOrder []string
	var hourOrder []int
	var sentimentScores []float64

	for seq, m := range sorted {
		acc := accs[m.Sender]
		ps := acc.stats

		stats.TotalMessages++
		stats.TotalWords += m.WordCount
		stats.TotalCharacters += m.CharacterCount
		stats.TotalEmojis += m.EmojiCount
		ps.MessageCount++
		ps.WordCount += m.WordCount
		ps.CharacterCount += m.CharacterCount
		ps.EmojiCount += m.EmojiCount

		if stats.LongestMessage == nil || m.CharacterCount > stats.LongestMessage.Length {
			stats.LongestMessage = longestOf(m.ChatMessage)
		}
		if ps.LongestMessage == nil || m.CharacterCount > ps.LongestMessage.Length {
			ps.LongestMessage = longestOf(m.ChatMessage)
		}

		for _, e := range parse.Emojis(m.Content) {
			if globalEmoji[e] == 0 {
				globalEmojiOrder = append(globalEmojiOrder, e)
			}
			globalEmoji[e]++
			if ps.EmojiFrequency[e] == 0 {
				acc.emojiOrder = append(acc.emojiOrder, e)
			}
			ps.EmojiFrequency[e]++
		}

		if m.IsMedia {
			stats.TotalMedia++
			ps.MediaCount++
			countMedia(stats.MediaStats, m.MediaType)
			countMedia(ps.MediaStats, m.MediaType)
		}

		n, _ := stats.MessagesByDate.Get(m.Date)
		stats.MessagesByDate.Set(m.Date, n+1)
		acc.activeDates[m.Date] = struct{}{}

		if hour, _, ok := parseClock(m.Time); ok {
			if stats.MessagesByHour[hour] == 0 {
				hourOrder = append(hourOrder, hour)
			}
			stats.MessagesByHour[hour]++
		}

		if m.IsMedia || strings.TrimSpace(m.Content) == "" {
			continue
		}
		score := scoreMessage(stats, acc, m.ChatMessage, seq, opts)
		sentimentScores = append(sentimentScores, score)
	}

	collectResponseTimes(sorted, accs, opts.SessionGap)

	chatDays := stats.MessagesByDate.Len()
	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		finalizeParticipant(accs[pair.Key], stats.TotalMessages, chatDays, opts)
	}

	stats.UniqueEmojis = len(globalEmoji)
	stats.TopEmojis = topEmojis(globalEmoji, globalEmojiOrder, opts.GlobalTopEmojis)
	stats.AverageMessagesPerDay = float64(stats.TotalMessages) / float64(stats.Duration)
	finalizeSentiment(&stats.Sentiment, sentimentScores)

	for pair := stats.MessagesByDate.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value > stats.MostActiveDateCount {
			stats.MostActiveDate, stats.MostActiveDateCount = pair.Key, pair.Value
		}
	}
	best := 0
	for _, h := range hourOrder {
		if stats.MessagesByHour[h] > best {
			stats.MostActiveHour, best = h, stats.MessagesByHour[h]
		}
	}

	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Manipulation.AverageScore > stats.MostManipulative.Score {
			stats.MostManipulative = ParticipantScore{Name: pair.Key, Score: pair.Value.Manipulation.AverageScore}
		}
	}
	stats.Relationship = deriveRelationship(stats)

	return stats, nil
}

func newParticipantStats(name string) *ParticipantStats {
	return &ParticipantStats{
		Name:               name,
		EmojiFrequency:     make(map[string]int),
		MediaStats:         make(map[string]int),
		StyleCounts:        make(map[string]int),
		CommunicationStyle: pattern.StyleNeutral,
		IntimacyLevel:      pattern.IntimacyLow,
		Manipulation: ManipulationSummary{
			ByType:   make(map[string]int),
			Examples: []ManipulationExample{},
		},
		Apologies:       ApologySummary{Examples: []Example{}},
		LoveExpressions: LoveSummary{Examples: []Example{}},
	}
}

// sortMessages orders messages by timestamp, stable on ties. Messages whose
// timestamp cannot be read keep their relative order after all others.
func sortMessages(messages []parse.ChatMessage) []timedMessage {
	out := make([]timedMessage, len(messages))
	for i, m := range messages {
		at, ok := ParseTimestamp(m.Date, m.Time)
		if !ok {
			logging.Debug("unparseable timestamp, excluded from time figures", "date", m.Date, "time", m.Time, "line", m.Line)
		}
		out[i] = timedMessage{ChatMessage: m, at: at, ok: ok}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.at.Before(b.at)
	})
	return out
}

// dateRange reports the first and last readable dates and the whole number
// of days between them, never less than one.
func dateRange(sorted []timedMessage) (start, end string, days int) {
	first, last := -1, -1
	for i, m := range sorted {
		if !m.ok {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return "", "", 1
	}
	start, end = sorted[first].Date, sorted[last].Date

	s, _ := parseDate(start)
	e, _ := parseDate(end)
	diff := e.Sub(s)
	if diff < 0 {
		diff = -diff
	}
	days = int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return start, end, days
}

func longestOf(m parse.ChatMessage) *LongestMessage {
	return &LongestMessage{
		Sender:  m.Sender,
		Content: m.Content,
		Date:    m.Date,
		Time:    m.Time,
		Line:    m.Line,
		Length:  m.CharacterCount,
	}
}

func countMedia(hist map[string]int, kind parse.MediaType) {
	switch kind {
	case parse.MediaImage, parse.MediaVideo, parse.MediaDocument, parse.MediaLink,
		parse.MediaSticker, parse.MediaGIF, parse.MediaAudio:
		hist[string(kind)]++
	}
}

// scoreMessage runs the pattern engine over one text message and records the
// results on the sender. It returns the sentiment score.
func scoreMessage(stats *ChatStats, acc *participantAcc, m parse.ChatMessage, seq int, opts Options) float64 {
	ps := acc.stats
	example := Example{Text: m.Content, Date: m.Date, Time: m.Time, Line: m.Line}

	sent := pattern.AnalyzeSentiment(m.Content)
	acc.sentiment = append(acc.sentiment, sent.Score)
	switch sent.Dominant {
	case pattern.Positive:
		ps.Sentiment.PositiveCount++
		stats.Sentiment.Positive++
	case pattern.Negative:
		ps.Sentiment.NegativeCount++
		stats.Sentiment.Negative++
	default:
		ps.Sentiment.NeutralCount++
		stats.Sentiment.Neutral++
	}
	if sent.Score > 0 && (ps.Sentiment.MostPositive == nil || sent.Score > ps.Sentiment.MostPositive.Score) {
		ex := example
		ex.Score = sent.Score
		ps.Sentiment.MostPositive = &ex
	}
	if sent.Score < 0 && (ps.Sentiment.MostNegative == nil || sent.Score < ps.Sentiment.MostNegative.Score) {
		ex := example
		ex.Score = sent.Score
		ps.Sentiment.MostNegative = &ex
	}

	if man := pattern.DetectManipulation(m.Content); man.Score > 0 {
		acc.manipulation = append(acc.manipulation, man.Score)
		ps.Manipulation.MessageCount++
		var types []string
		seen := make(map[string]bool)
		for _, in := range man.Instances {
			ps.Manipulation.ByType[in.Type]++
			stats.ManipulationByType[in.Type]++
			if !seen[in.Type] {
				seen[in.Type] = true
				types = append(types, in.Type)
			}
		}
		if man.Score > opts.ManipulationThreshold {
			ex := example
			ex.Match = man.Instances[0].Text
			ex.Score = man.Score
			acc.topManipulation.add(ManipulationExample{Example: ex, Types: types}, seq)
		}
	}

	if ap := pattern.DetectApologies(m.Content); ap.Found {
		ps.Apologies.Count++
		if len(ps.Apologies.Examples) < opts.ExampleLimit {
			ex := example
			ex.Match = ap.Instances[0].Text
			ps.Apologies.Examples = append(ps.Apologies.Examples, ex)
		}
	}

	if love := pattern.DetectLoveExpressions(m.Content); love.Found {
		ps.LoveExpressions.Count++
		if love.ContainsILoveYou {
			ps.LoveExpressions.ILoveYouCount++
		}
		if len(ps.LoveExpressions.Examples) < opts.ExampleLimit {
			ex := example
			ex.Match = love.Instances[0].Text
			ps.LoveExpressions.Examples = append(ps.LoveExpressions.Examples, ex)
		}
	}

	agr := pattern.DetectAgreement(m.Content)
	if agr.Agrees {
		ps.Agreements++
	}
	if agr.Disagrees {
		ps.Disagreements++
	}

	if cs := pattern.AnalyzeCommunicationStyle(m.Content); cs.Style != pattern.StyleNeutral {
		ps.StyleCounts[string(cs.Style)]++
	}
	acc.intimacy = append(acc.intimacy, pattern.AnalyzeIntimacy(m.Content).Score)

	return sent.Score
}

// collectResponseTimes walks adjacent message pairs. A change of sender
// within a day is a response sample for the new sender; a silence of at
// least gap (or the very first message) starts a conversation.
func collectResponseTimes(sorted []timedMessage, accs map[string]*participantAcc, gap time.Duration) {
	for i, m := range sorted {
		acc := accs[m.Sender]
		if i == 0 {
			acc.stats.ConversationsStarted++
			continue
		}
		prev := sorted[i-1]
		if !m.ok || !prev.ok {
			continue
		}
		delta := m.at.Sub(prev.at)
		if delta >= gap {
			acc.stats.ConversationsStarted++
		}
		if m.Sender == prev.Sender {
			continue
		}
		if delta > 0 && delta < maxResponseGap {
			acc.responses = append(acc.responses, delta.Minutes())
		}
	}
}

func finalizeParticipant(acc *participantAcc, totalMessages, chatDays int, opts Options) {
	ps := acc.stats

	if totalMessages > 0 {
		ps.Percentage = float64(ps.MessageCount) / float64(totalMessages) * 100
	}
	if ps.MessageCount > 0 {
		ps.AverageWordsPerMessage = float64(ps.WordCount) / float64(ps.MessageCount)
	}
	ps.TopEmojis = topEmojis(ps.EmojiFrequency, acc.emojiOrder, opts.TopEmojis)

	if len(acc.responses) > 0 {
		avg := mean(acc.responses)
		fastest, slowest := acc.responses[0], acc.responses[0]
		for _, r := range acc.responses[1:] {
			fastest = math.Min(fastest, r)
			slowest = math.Max(slowest, r)
		}
		ps.ResponseTime = ResponseTime{Average: &avg, Fastest: &fastest, Slowest: &slowest, Samples: len(acc.responses)}
	}

	ps.Sentiment.Average = mean(acc.sentiment)
	ps.Sentiment.ScoredCount = len(acc.sentiment)

	ps.Manipulation.AverageScore = mean(acc.manipulation)
	ps.Manipulation.Examples = acc.topManipulation.sorted()

	best := 0
	for _, st := range []pattern.Style{pattern.StyleAssertive, pattern.StylePassive, pattern.StyleAggressive, pattern.StylePassiveAggressive} {
		if n := ps.StyleCounts[string(st)]; n > best {
			ps.CommunicationStyle, best = st, n
		}
	}

	ps.IntimacyScore = mean(acc.intimacy)
	ps.IntimacyLevel = pattern.IntimacyLevelFor(ps.IntimacyScore)

	ps.ActiveDays = len(acc.activeDates)
	if chatDays > 0 {
		ps.ConsistencyScore = float64(ps.ActiveDays) / float64(chatDays)
	}
}

func finalizeSentiment(g *GlobalSentiment, scores []float64) {
	g.Average = mean(scores)
	total := g.Positive + g.Neutral + g.Negative
	if total == 0 {
		g.NeutralPercent = 100
		return
	}
	g.PositivePercent = float64(g.Positive) / float64(total) * 100
	g.NeutralPercent = float64(g.Neutral) / float64(total) * 100
	g.NegativePercent = float64(g.Negative) / float64(total) * 100
}

// topEmojis sorts by descending count; equal counts keep first-seen order.
func topEmojis(freq map[string]int, order []string, n int) []EmojiCount {
	out := make([]EmojiCount, 0, len(order))
	for _, e := range order {
		out = append(out, EmojiCount{Emoji: e, Count: freq[e]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
