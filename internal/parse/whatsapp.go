package parse

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// headerRe matches the first line of a message in both export flavours:
//
//	12.01.23, 10:00 - Alice: hello
//	[12/01/2023, 10:00:42] Alice: hello
var headerRe = regexp.MustCompile(
	`^\[?(\d{1,2}[./-]\d{1,2}[./-](?:\d{4}|\d{2})),?\s+(\d{1,2}:\d{2})(?::\d{2})?\]?(?:\s+-\s+|\s+)([^:]*):\s?(.*)$`,
)

// Parse converts the text of an exported chat into messages, in source order.
// Lines that are not message headers continue the previous message; lines
// before the first header are dropped. Parse never fails: unrecognised input
// simply yields no messages.
func Parse(raw string) []ChatMessage {
	// a strings.Reader cannot fail; an over-long line only truncates the result
	messages, _ := ParseReader(strings.NewReader(raw))
	return messages
}

// ParseReader is Parse over a stream. Only read errors are returned.
func ParseReader(r io.Reader) ([]ChatMessage, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		p.feed(lineNum, scanner.Text())
	}
	return p.finish(), scanner.Err()
}

type parser struct {
	messages []ChatMessage
	cur      *ChatMessage
}

func (p *parser) feed(lineNum int, line string) {
	line = strings.TrimRight(line, "\r")
	// iOS exports prefix some lines with a left-to-right mark
	line = strings.TrimPrefix(line, "\u200e")

	if m := headerRe.FindStringSubmatch(line); m != nil {
		p.flush()
		content := m[4]
		p.cur = &ChatMessage{
			Date:           m[1],
			Time:           padClock(m[2]),
			Sender:         strings.TrimSpace(m[3]),
			Content:        content,
			EmojiCount:     CountEmoji(content),
			WordCount:      CountWords(content),
			CharacterCount: CountCharacters(content),
			Line:           lineNum,
		}
		return
	}

	if p.cur == nil {
		return // export preamble
	}
	p.cur.Content += "\n" + line
	p.cur.EmojiCount += CountEmoji(line)
	p.cur.WordCount += CountWords(line)
	p.cur.CharacterCount += CountCharacters(line)
}

func (p *parser) flush() {
	if p.cur == nil {
		return
	}
	msg := *p.cur
	msg.HasEmoji = msg.EmojiCount > 0
	msg.MediaType = ClassifyMedia(msg.Content)
	msg.IsMedia = msg.MediaType != MediaNone
	p.messages = append(p.messages, msg)
	p.cur = nil
}

func (p *parser) finish() []ChatMessage {
	p.flush()
	return p.messages
}

// padClock turns "9:05" into "09:05".
func padClock(s string) string {
	if len(s) == 4 {
		return "0" + s
	}
	return s
}

// Participants returns the distinct senders in the order they first appear.
func Participants(messages []ChatMessage) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range messages {
		if _, ok := seen[m.Sender]; ok {
			continue
		}
		seen[m.Sender] = struct{}{}
		names = append(names, m.Sender)
	}
	return names
}
