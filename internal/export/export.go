// Package export writes a ChatStats snapshot as CSV, JSON or JSON Schema.
// Exporters only read fields that the analysis already produced.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/pattern"
)

var csvHeader = []string{"section", "name", "metric", "value"}

// WriteCSV writes stats in long form: one row per (section, name, metric).
func WriteCSV(w io.Writer, stats *analyze.ChatStats) error {
	cw := csv.NewWriter(w)
	rows := [][]string{csvHeader}
	add := func(section, name, metric, value string) {
		rows = append(rows, []string{section, name, metric, value})
	}

	add("summary", "", "totalMessages", itoa(stats.TotalMessages))
	add("summary", "", "totalWords", itoa(stats.TotalWords))
	add("summary", "", "totalCharacters", itoa(stats.TotalCharacters))
	add("summary", "", "totalEmojis", itoa(stats.TotalEmojis))
	add("summary", "", "uniqueEmojis", itoa(stats.UniqueEmojis))
	add("summary", "", "totalMedia", itoa(stats.TotalMedia))
	add("summary", "", "startDate", stats.StartDate)
	add("summary", "", "endDate", stats.EndDate)
	add("summary", "", "duration", itoa(stats.Duration))
	add("summary", "", "averageMessagesPerDay", ftoa(stats.AverageMessagesPerDay))
	add("summary", "", "mostActiveDate", stats.MostActiveDate)
	add("summary", "", "mostActiveHour", itoa(stats.MostActiveHour))
	add("summary", "", "sentimentAverage", ftoa(stats.Sentiment.Average))
	add("summary", "", "positivePercent", ftoa(stats.Sentiment.PositivePercent))
	add("summary", "", "neutralPercent", ftoa(stats.Sentiment.NeutralPercent))
	add("summary", "", "negativePercent", ftoa(stats.Sentiment.NegativePercent))
	add("summary", "", "mostManipulative", stats.MostManipulative.Name)

	for pair := stats.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		p := pair.Value
		name := pair.Key
		add("participant", name, "messageCount", itoa(p.MessageCount))
		add("participant", name, "percentage", ftoa(p.Percentage))
		add("participant", name, "wordCount", itoa(p.WordCount))
		add("participant", name, "characterCount", itoa(p.CharacterCount))
		add("participant", name, "emojiCount", itoa(p.EmojiCount))
		add("participant", name, "mediaCount", itoa(p.MediaCount))
		add("participant", name, "averageWordsPerMessage", ftoa(p.AverageWordsPerMessage))
		add("participant", name, "responseTimeAverage", fptoa(p.ResponseTime.Average))
		add("participant", name, "responseTimeFastest", fptoa(p.ResponseTime.Fastest))
		add("participant", name, "responseTimeSlowest", fptoa(p.ResponseTime.Slowest))
		add("participant", name, "sentimentAverage", ftoa(p.Sentiment.Average))
		add("participant", name, "manipulationAverage", ftoa(p.Manipulation.AverageScore))
		add("participant", name, "manipulationMessages", itoa(p.Manipulation.MessageCount))
		add("participant", name, "apologies", itoa(p.Apologies.Count))
		add("participant", name, "loveExpressions", itoa(p.LoveExpressions.Count))
		add("participant", name, "iLoveYou", itoa(p.LoveExpressions.ILoveYouCount))
		add("participant", name, "communicationStyle", string(p.CommunicationStyle))
		add("participant", name, "intimacyScore", ftoa(p.IntimacyScore))
		add("participant", name, "intimacyLevel", string(p.IntimacyLevel))
		add("participant", name, "consistencyScore", ftoa(p.ConsistencyScore))
		add("participant", name, "conversationsStarted", itoa(p.ConversationsStarted))
		add("participant", name, "agreements", itoa(p.Agreements))
		add("participant", name, "disagreements", itoa(p.Disagreements))
	}

	for pair := stats.MessagesByDate.Oldest(); pair != nil; pair = pair.Next() {
		add("date", pair.Key, "messages", itoa(pair.Value))
	}
	for h, n := range stats.MessagesByHour {
		add("hour", fmt.Sprintf("%02d", h), "messages", itoa(n))
	}
	for _, kind := range parse.MediaTypes {
		if n := stats.MediaStats[string(kind)]; n > 0 {
			add("media", string(kind), "count", itoa(n))
		}
	}
	for _, kind := range pattern.ManipulationTypes {
		if n := stats.ManipulationByType[string(kind)]; n > 0 {
			add("manipulation", string(kind), "count", itoa(n))
		}
	}
	for _, e := range stats.TopEmojis {
		add("emoji", e.Emoji, "count", itoa(e.Count))
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON encodes stats; pretty indents with two spaces.
func WriteJSON(w io.Writer, stats *analyze.ChatStats, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func fptoa(f *float64) string {
	if f == nil {
		return ""
	}
	return ftoa(*f)
}
