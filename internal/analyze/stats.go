package analyze

import (
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/pattern"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ChatStats is the aggregate result of one analysis run. It is built once
// and never mutated afterwards.
type ChatStats struct {
	TotalMessages   int `json:"totalMessages"`
	TotalWords      int `json:"totalWords"`
	TotalCharacters int `json:"totalCharacters"`
	TotalEmojis     int `json:"totalEmojis"`
	TotalMedia      int `json:"totalMedia"`
	UniqueEmojis    int `json:"uniqueEmojis"`

	StartDate             string  `json:"startDate"`
	EndDate               string  `json:"endDate"`
	Duration              int     `json:"duration"` // days, at least 1
	AverageMessagesPerDay float64 `json:"averageMessagesPerDay"`

	// Keys are participant names in first-seen order.
	ParticipantStats *orderedmap.OrderedMap[string, *ParticipantStats] `json:"participantStats"`

	// Keys are dates as written in the export, in first-seen order.
	MessagesByDate      *orderedmap.OrderedMap[string, int] `json:"messagesByDate"`
	MessagesByHour      [24]int                             `json:"messagesByHour"`
	MostActiveDate      string                              `json:"mostActiveDate"`
	MostActiveDateCount int                                 `json:"mostActiveDateCount"`
	MostActiveHour      int                                 `json:"mostActiveHour"` // -1 when no clock could be read

	MediaStats     map[string]int  `json:"mediaStats"`
	TopEmojis      []EmojiCount    `json:"topEmojis"`
	LongestMessage *LongestMessage `json:"longestMessage,omitempty"`

	Sentiment          GlobalSentiment  `json:"sentiment"`
	ManipulationByType map[string]int   `json:"manipulationByType"`
	MostManipulative   ParticipantScore `json:"mostManipulative"`
	Relationship       Relationship     `json:"relationship"`
}

// Participants returns the participant names in first-seen order.
func (s *ChatStats) Participants() []string {
	names := make([]string, 0, s.ParticipantStats.Len())
	for pair := s.ParticipantStats.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Participant looks up one participant's stats.
func (s *ChatStats) Participant(name string) (*ParticipantStats, bool) {
	return s.ParticipantStats.Get(name)
}

type ParticipantStats struct {
	Name                   string  `json:"name"`
	MessageCount           int     `json:"messageCount"`
	WordCount              int     `json:"wordCount"`
	CharacterCount         int     `json:"characterCount"`
	EmojiCount             int     `json:"emojiCount"`
	MediaCount             int     `json:"mediaCount"`
	Percentage             float64 `json:"percentage"` // share of all messages
	AverageWordsPerMessage float64 `json:"averageWordsPerMessage"`

	EmojiFrequency map[string]int  `json:"emojiFrequency"`
	TopEmojis      []EmojiCount    `json:"topEmojis"`
	LongestMessage *LongestMessage `json:"longestMessage,omitempty"`
	MediaStats     map[string]int  `json:"mediaStats"`

	ResponseTime    ResponseTime        `json:"responseTime"`
	Sentiment       SentimentSummary    `json:"sentiment"`
	Manipulation    ManipulationSummary `json:"manipulation"`
	Apologies       ApologySummary      `json:"apologies"`
	LoveExpressions LoveSummary         `json:"loveExpressions"`

	CommunicationStyle pattern.Style         `json:"communicationStyle"`
	StyleCounts        map[string]int        `json:"styleCounts"`
	IntimacyScore      float64               `json:"intimacyScore"`
	IntimacyLevel      pattern.IntimacyLevel `json:"intimacyLevel"`
	ConsistencyScore   float64               `json:"consistencyScore"` // active days / chat days
	ActiveDays         int                   `json:"activeDays"`

	Agreements           int `json:"agreements"`
	Disagreements        int `json:"disagreements"`
	ConversationsStarted int `json:"conversationsStarted"`
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type LongestMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Line    int    `json:"line"`
	Length  int    `json:"length"` // characters
}

// ResponseTime values are minutes; nil when the participant never replied
// within a day.
type ResponseTime struct {
	Average *float64 `json:"average"`
	Fastest *float64 `json:"fastest"`
	Slowest *float64 `json:"slowest"`
	Samples int      `json:"samples"`
}

type Example struct {
	Text  string  `json:"text"`
	Match string  `json:"match,omitempty"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Line  int     `json:"line"` // header line in the export
	Score float64 `json:"score,omitempty"`
}

type SentimentSummary struct {
	Average       float64  `json:"average"`
	ScoredCount   int      `json:"scoredCount"`
	PositiveCount int      `json:"positiveCount"`
	NeutralCount  int      `json:"neutralCount"`
	NegativeCount int      `json:"negativeCount"`
	MostPositive  *Example `json:"mostPositive,omitempty"`
	MostNegative  *Example `json:"mostNegative,omitempty"`
}

type ManipulationExample struct {
	Example
	Types []string `json:"types"`
}

type ManipulationSummary struct {
	AverageScore float64               `json:"averageScore"`
	MessageCount int                   `json:"messageCount"` // messages scoring above zero
	ByType       map[string]int        `json:"byType"`
	Examples     []ManipulationExample `json:"examples"` // highest score first
}

type ApologySummary struct {
	Count    int       `json:"count"`
	Examples []Example `json:"examples"`
}

type LoveSummary struct {
	Count         int       `json:"count"`
	ILoveYouCount int       `json:"iLoveYouCount"`
	Examples      []Example `json:"examples"`
}

type GlobalSentiment struct {
	Average         float64 `json:"average"`
	Positive        int     `json:"positive"`
	Neutral         int     `json:"neutral"`
	Negative        int     `json:"negative"`
	PositivePercent float64 `json:"positivePercent"`
	NeutralPercent  float64 `json:"neutralPercent"`
	NegativePercent float64 `json:"negativePercent"`
}

type ParticipantScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Relationship holds the cross-participant derived fields. An empty name
// means no participant qualified.
type Relationship struct {
	MostRomantic          string `json:"mostRomantic"`
	MostApologetic        string `json:"mostApologetic"`
	ConversationInitiator string `json:"conversationInitiator"`
	ConversationReplier   string `json:"conversationReplier"`
	FastestResponder      string `json:"fastestResponder"`
	MostAgreements        string `json:"mostAgreements"`
	MostDisagreements     string `json:"mostDisagreements"`
}
