package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/pattern"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorName    = "\033[1;34m" // bold blue
	colorGood    = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorBar     = "\033[36m"   // cyan
	colorBoldRed = "\033[1;31m" // manipulation and negative values
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

type Options struct {
	Width int  // wrap width (0 = no wrap)
	Color bool // emit ANSI colours
}

// Section is one titled block of the report.
type Section struct {
	Title string
	Body  string
}

type writer struct {
	b    strings.Builder
	opts Options
}

func (w *writer) paint(color, s string) string {
	if !w.opts.Color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (w *writer) line(format string, args ...any) {
	for _, l := range wrapLine(fmt.Sprintf(format, args...), w.opts.Width) {
		w.b.WriteString(l)
		w.b.WriteString("\n")
	}
}

func (w *writer) field(label, value string) {
	w.line("  %-24s %s", label, value)
}

func (w *writer) heading(title string) {
	if w.opts.Color {
		w.b.WriteString(headingStyle.Render(title))
		w.b.WriteString("\n")
		return
	}
	w.b.WriteString(title + "\n" + strings.Repeat("=", runewidth.StringWidth(title)) + "\n")
}

// Report renders every section of the analysis.
func Report(stats *analyze.ChatStats, opts Options) string {
	var parts []string
	for _, s := range Sections(stats, opts) {
		w := &writer{opts: opts}
		w.heading(s.Title)
		parts = append(parts, w.b.String()+s.Body)
	}
	return strings.Join(parts, "\n")
}

// Sections splits the report into the blocks the interactive viewer lists:
// overview, one per participant, activity, manipulation, relationship.
func Sections(stats *analyze.ChatStats, opts Options) []Section {
	sections := []Section{{Title: "Overview", Body: overview(stats, opts)}}
	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		sections = append(sections, Section{Title: pair.Key, Body: Participant(pair.Value, opts)})
	}
	sections = append(sections,
		Section{Title: "Activity", Body: activity(stats, opts)},
		Section{Title: "Manipulation", Body: manipulation(stats, opts)},
		Section{Title: "Relationship", Body: relationship(stats, opts)},
	)
	return sections
}

func overview(stats *analyze.ChatStats, opts Options) string {
	w := &writer{opts: opts}
	w.field("Period", fmt.Sprintf("%s - %s (%s)", orDash(stats.StartDate), orDash(stats.EndDate), plural(stats.Duration, "day")))
	w.field("Messages", fmt.Sprintf("%d (%.1f per day)", stats.TotalMessages, stats.AverageMessagesPerDay))
	w.field("Words", fmt.Sprint(stats.TotalWords))
	w.field("Characters", fmt.Sprint(stats.TotalCharacters))
	w.field("Emojis", fmt.Sprintf("%d (%d unique)", stats.TotalEmojis, stats.UniqueEmojis))
	w.field("Media", fmt.Sprint(stats.TotalMedia))
	for _, kind := range parse.MediaTypes {
		if n := stats.MediaStats[string(kind)]; n > 0 {
			w.field("  "+string(kind), fmt.Sprint(n))
		}
	}
	w.field("Participants", strings.Join(stats.Participants(), ", "))
	if len(stats.TopEmojis) > 0 {
		w.field("Top emojis", emojiList(stats.TopEmojis))
	}
	s := stats.Sentiment
	w.field("Sentiment", fmt.Sprintf("%s  %s positive, %s neutral, %s negative",
		w.score(s.Average), pct(s.PositivePercent), pct(s.NeutralPercent), pct(s.NegativePercent)))
	if lm := stats.LongestMessage; lm != nil {
		w.field("Longest message", fmt.Sprintf("%s, %d chars, %s %s", w.paint(colorName, lm.Sender), lm.Length, lm.Date, lm.Time))
		w.line("    %s", w.quote(lm.Content))
	}
	return w.b.String()
}

// Participant renders one participant's breakdown.
func Participant(p *analyze.ParticipantStats, opts Options) string {
	w := &writer{opts: opts}
	w.field("Messages", fmt.Sprintf("%d (%s of chat)", p.MessageCount, pct(p.Percentage)))
	w.field("Words", fmt.Sprintf("%d (%.1f per message)", p.WordCount, p.AverageWordsPerMessage))
	w.field("Characters", fmt.Sprint(p.CharacterCount))
	w.field("Emojis", fmt.Sprint(p.EmojiCount))
	if len(p.TopEmojis) > 0 {
		w.field("Top emojis", emojiList(p.TopEmojis))
	}
	w.field("Media", fmt.Sprint(p.MediaCount))
	w.field("Active days", fmt.Sprintf("%d (consistency %.2f)", p.ActiveDays, p.ConsistencyScore))
	w.field("Conversations started", fmt.Sprint(p.ConversationsStarted))

	rt := p.ResponseTime
	if rt.Average != nil {
		w.field("Response time", fmt.Sprintf("avg %s, fastest %s, slowest %s (%d replies)",
			minutes(*rt.Average), minutes(*rt.Fastest), minutes(*rt.Slowest), rt.Samples))
	} else {
		w.field("Response time", "-")
	}

	s := p.Sentiment
	w.field("Sentiment", fmt.Sprintf("%s  (%d positive, %d neutral, %d negative)",
		w.score(s.Average), s.PositiveCount, s.NeutralCount, s.NegativeCount))
	if s.MostPositive != nil {
		w.line("    + %s", w.quote(s.MostPositive.Text))
	}
	if s.MostNegative != nil {
		w.line("    - %s", w.quote(s.MostNegative.Text))
	}

	w.field("Style", fmt.Sprintf("%s%s", p.CommunicationStyle, styleCounts(p.StyleCounts)))
	w.field("Intimacy", fmt.Sprintf("%.2f (%s)", p.IntimacyScore, p.IntimacyLevel))
	w.field("Agreements", fmt.Sprintf("%d agree, %d disagree", p.Agreements, p.Disagreements))

	w.field("Love expressions", fmt.Sprintf("%d (%d \"I love you\")", p.LoveExpressions.Count, p.LoveExpressions.ILoveYouCount))
	for _, ex := range p.LoveExpressions.Examples {
		w.line("    %s", w.example(ex))
	}
	w.field("Apologies", fmt.Sprint(p.Apologies.Count))
	for _, ex := range p.Apologies.Examples {
		w.line("    %s", w.example(ex))
	}

	m := p.Manipulation
	w.field("Manipulation", fmt.Sprintf("%s avg over %d messages", w.risk(m.AverageScore), m.MessageCount))
	for _, ex := range m.Examples {
		w.line("    %s %s [%s]", w.risk(ex.Score), w.example(ex.Example), strings.Join(ex.Types, ", "))
	}
	return w.b.String()
}

func activity(stats *analyze.ChatStats, opts Options) string {
	w := &writer{opts: opts}
	if stats.MostActiveDate != "" {
		w.field("Most active day", fmt.Sprintf("%s (%s)", stats.MostActiveDate, plural(stats.MostActiveDateCount, "message")))
	}
	if stats.MostActiveHour >= 0 {
		w.field("Most active hour", fmt.Sprintf("%02d:00", stats.MostActiveHour))
	}
	w.line("")

	peak := 0
	for _, n := range stats.MessagesByHour {
		peak = max(peak, n)
	}
	barWidth := 40
	if opts.Width > 0 {
		barWidth = max(10, min(barWidth, opts.Width-14))
	}
	for h, n := range stats.MessagesByHour {
		w.line("  %02d %s %d", h, w.paint(colorBar, bar(n, peak, barWidth)), n)
	}
	return w.b.String()
}

func manipulation(stats *analyze.ChatStats, opts Options) string {
	w := &writer{opts: opts}
	if stats.MostManipulative.Name != "" {
		w.field("Most manipulative", fmt.Sprintf("%s (%s)", w.paint(colorName, stats.MostManipulative.Name), w.risk(stats.MostManipulative.Score)))
	} else {
		w.field("Most manipulative", "-")
	}
	for _, kind := range pattern.ManipulationTypes {
		if n := stats.ManipulationByType[string(kind)]; n > 0 {
			w.field(string(kind), fmt.Sprint(n))
		}
	}
	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		m := pair.Value.Manipulation
		w.field(pair.Key, fmt.Sprintf("%s avg, %d messages", w.risk(m.AverageScore), m.MessageCount))
	}
	return w.b.String()
}

func relationship(stats *analyze.ChatStats, opts Options) string {
	w := &writer{opts: opts}
	r := stats.Relationship
	rows := []struct{ label, name string }{
		{"Most romantic", r.MostRomantic},
		{"Most apologetic", r.MostApologetic},
		{"Starts conversations", r.ConversationInitiator},
		{"Replies most", r.ConversationReplier},
		{"Fastest responder", r.FastestResponder},
		{"Agrees most", r.MostAgreements},
		{"Disagrees most", r.MostDisagreements},
	}
	for _, row := range rows {
		w.field(row.label, w.paint(colorName, orDash(row.name)))
	}
	return w.b.String()
}

func (w *writer) score(f float64) string {
	s := fmt.Sprintf("%+.2f", f)
	switch {
	case f > 0:
		return w.paint(colorGood, s)
	case f < 0:
		return w.paint(colorBoldRed, s)
	}
	return s
}

func (w *writer) risk(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	if f > 0.5 {
		return w.paint(colorBoldRed, s)
	}
	return s
}

// quote flattens a message to one line and truncates it to fit the width.
func (w *writer) quote(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	limit := 72
	if w.opts.Width > 0 {
		limit = max(20, w.opts.Width-8)
	}
	return `"` + runewidth.Truncate(text, limit, "...") + `"`
}

func (w *writer) example(ex analyze.Example) string {
	q := w.quote(ex.Text)
	if ex.Match != "" {
		q = highlight(q, ex.Match, w.opts.Color)
	}
	return w.paint(colorDim, ex.Date+" "+ex.Time) + " " + q
}

// highlight marks the first occurrence of match in text.
func highlight(text, match string, color bool) string {
	idx := strings.Index(text, match)
	if idx < 0 || !color {
		return text
	}
	return text[:idx] + colorBoldRed + match + colorReset + text[idx+len(match):]
}

func bar(n, peak, width int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	cells := n * width / peak
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

func emojiList(list []analyze.EmojiCount) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = fmt.Sprintf("%s %d", e.Emoji, e.Count)
	}
	return strings.Join(parts, "  ")
}

func styleCounts(counts map[string]int) string {
	var parts []string
	for _, st := range []pattern.Style{pattern.StyleAssertive, pattern.StylePassive, pattern.StyleAggressive, pattern.StylePassiveAggressive} {
		if n := counts[string(st)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", st, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func minutes(m float64) string {
	if m < 60 {
		return fmt.Sprintf("%.1fm", m)
	}
	return fmt.Sprintf("%.1fh", m/60)
}

func pct(f float64) string { return fmt.Sprintf("%.1f%%", f) }

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
