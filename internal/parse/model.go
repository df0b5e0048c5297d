package parse

type MediaType string

const (
	MediaNone     MediaType = ""
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
	MediaLink     MediaType = "link"
	MediaSticker  MediaType = "sticker"
	MediaGIF      MediaType = "gif"
	MediaAudio    MediaType = "audio"
)

// MediaTypes lists every media kind in histogram order.
var MediaTypes = []MediaType{
	MediaImage, MediaVideo, MediaDocument, MediaLink, MediaSticker, MediaGIF, MediaAudio,
}

// ChatMessage is one logical message of an export. Content may span several
// physical lines; continuation lines are joined with "\n".
type ChatMessage struct {
	Date           string    `json:"date"` // as written in the export, e.g. "12.01.23"
	Time           string    `json:"time"` // HH:MM, 24-hour
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	IsMedia        bool      `json:"isMedia"`
	MediaType      MediaType `json:"mediaType,omitempty"`
	HasEmoji       bool      `json:"hasEmoji"`
	EmojiCount     int       `json:"emojiCount"`
	WordCount      int       `json:"wordCount"`
	CharacterCount int       `json:"characterCount"`
	Line           int       `json:"line"` // line number of the header in the source
}
