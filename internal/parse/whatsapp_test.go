package parse

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	senders := []string{"Alice", "Bob", "Carol"}
	var lines []string
	var want []string
	for i := 0; i < 30; i++ {
		content := fmt.Sprintf("message number %d", i)
		want = append(want, content)
		lines = append(lines, fmt.Sprintf("%02d.01.23, 10:%02d - %s: %s", i%28+1, i, senders[i%3], content))
	}

	msgs := Parse(strings.Join(lines, "\n"))
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i, m := range msgs {
		if m.Content != want[i] {
			t.Errorf("message %d: content=%q, want %q", i, m.Content, want[i])
		}
		if m.Sender != senders[i%3] {
			t.Errorf("message %d: sender=%q, want %q", i, m.Sender, senders[i%3])
		}
	}
}

func TestParseContinuation(t *testing.T) {
	msgs := Parse("12.01.23, 10:00 - Alice: hello\nworld")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Content != "hello\nworld" {
		t.Fatalf("Content=%q", msgs[0].Content)
	}
	if msgs[0].WordCount != 2 {
		t.Errorf("WordCount=%d, want 2", msgs[0].WordCount)
	}
	if msgs[0].CharacterCount != 10 {
		t.Errorf("CharacterCount=%d, want 10", msgs[0].CharacterCount)
	}
}

func TestParseDropsPreamble(t *testing.T) {
	raw := "Chat export\nsome metadata\n12.01.23, 10:00 - Alice: hi\n"
	msgs := Parse(raw)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Content != "hi" {
		t.Errorf("Content=%q", msgs[0].Content)
	}
	if msgs[0].Line != 3 {
		t.Errorf("Line=%d, want 3", msgs[0].Line)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if msgs := Parse(""); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
	if msgs := Parse("just some text\nwithout headers"); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}

func TestParseHeaderFormats(t *testing.T) {
	tests := []struct {
		line   string
		date   string
		time   string
		sender string
	}{
		{"12.01.23, 10:00 - Alice: hi", "12.01.23", "10:00", "Alice"},
		{"1/2/2024, 9:05 - Bob Smith: hi", "1/2/2024", "09:05", "Bob Smith"},
		{"03-04-24 23:59 - Carol: hi", "03-04-24", "23:59", "Carol"},
		{"[12/01/2023, 10:00:42] Dave: hi", "12/01/2023", "10:00", "Dave"},
		{"\u200e[12/01/2023, 10:00:42] Eve: hi", "12/01/2023", "10:00", "Eve"},
	}
	for _, tt := range tests {
		msgs := Parse(tt.line)
		if len(msgs) != 1 {
			t.Errorf("%q: expected 1 message, got %d", tt.line, len(msgs))
			continue
		}
		m := msgs[0]
		if m.Date != tt.date || m.Time != tt.time || m.Sender != tt.sender || m.Content != "hi" {
			t.Errorf("%q: got date=%q time=%q sender=%q content=%q", tt.line, m.Date, m.Time, m.Sender, m.Content)
		}
	}
}

func TestParseEmptySenderAndContent(t *testing.T) {
	msgs := Parse("12.01.23, 10:00 -  : \n12.01.23, 10:01 - Bob:")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Sender != "" {
		t.Errorf("Sender=%q, want empty", msgs[0].Sender)
	}
	if msgs[1].Content != "" {
		t.Errorf("Content=%q, want empty", msgs[1].Content)
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	msgs := Parse("12.01.23, 10:00 - Alice: hi\r\n12.01.23, 10:01 - Bob: yo\r\n")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "hi" || msgs[1].Content != "yo" {
		t.Errorf("contents=%q,%q", msgs[0].Content, msgs[1].Content)
	}
}

func TestWordAndEmojiCounts(t *testing.T) {
	msgs := Parse("12.01.23, 10:00 - Alice: hi 😀 there")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	m := msgs[0]
	if m.EmojiCount != 1 {
		t.Errorf("EmojiCount=%d, want 1", m.EmojiCount)
	}
	if m.WordCount != 2 {
		t.Errorf("WordCount=%d, want 2", m.WordCount)
	}
	if !m.HasEmoji {
		t.Error("expected HasEmoji")
	}
}

func TestEmojiOnlyContinuationAddsNoWords(t *testing.T) {
	tests := []struct {
		line   string
		emojis int
	}{
		{"😀😀", 2},
		{"❤️", 1},
		{"☺️☺️", 2},
		{"👨\u200d👩\u200d👧", 3},
		{"👍🏽 ❤️", 2},
	}
	for _, tt := range tests {
		msgs := Parse("12.01.23, 10:00 - Alice: hello\n" + tt.line)
		if msgs[0].WordCount != 1 {
			t.Errorf("%q: WordCount=%d, want 1", tt.line, msgs[0].WordCount)
		}
		if msgs[0].EmojiCount != tt.emojis {
			t.Errorf("%q: EmojiCount=%d, want %d", tt.line, msgs[0].EmojiCount, tt.emojis)
		}
	}
}

func TestStripEmojiDropsJoiners(t *testing.T) {
	if got := StripEmoji("a❤️b👨\u200d👧c"); got != "abc" {
		t.Errorf("StripEmoji=%q, want %q", got, "abc")
	}
	if n := CountEmoji("❤️"); n != 1 {
		t.Errorf("CountEmoji(❤️)=%d, want 1", n)
	}
}

func TestSkinToneModifierNotCounted(t *testing.T) {
	if n := CountEmoji("👍🏽"); n != 1 {
		t.Errorf("CountEmoji=%d, want 1", n)
	}
}

func TestClassifyMedia(t *testing.T) {
	tests := []struct {
		content string
		want    MediaType
	}{
		{"<Media omitted>", MediaImage},
		{"<Medya dahil edilmedi>", MediaImage},
		{"image omitted", MediaImage},
		{"video omitted", MediaVideo},
		{"sticker omitted", MediaSticker},
		{"GIF omitted", MediaGIF},
		{"audio omitted", MediaAudio},
		{"PTT-20240101-WA0001.opus (file attached)", MediaAudio},
		{"rapor.pdf (dosya ekli)", MediaDocument},
		{"look https://example.com/x", MediaLink},
		{"www.example.com", MediaLink},
		{"just text", MediaNone},
	}
	for _, tt := range tests {
		if got := ClassifyMedia(tt.content); got != tt.want {
			t.Errorf("ClassifyMedia(%q)=%q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestParseMarksMedia(t *testing.T) {
	msgs := Parse("12.01.23, 10:00 - Alice: <Media omitted>\n12.01.23, 10:01 - Bob: ok")
	if !msgs[0].IsMedia || msgs[0].MediaType != MediaImage {
		t.Errorf("first message: IsMedia=%v MediaType=%q", msgs[0].IsMedia, msgs[0].MediaType)
	}
	if msgs[1].IsMedia {
		t.Error("second message should not be media")
	}
}

func TestParticipantsFirstSeenOrder(t *testing.T) {
	msgs := Parse(strings.Join([]string{
		"01.01.24, 09:00 - Zed: a",
		"01.01.24, 09:01 - Amy: b",
		"01.01.24, 09:02 - Zed: c",
		"01.01.24, 09:03 - Max: d",
	}, "\n"))
	got := Participants(msgs)
	want := []string{"Zed", "Amy", "Max"}
	if len(got) != len(want) {
		t.Fatalf("Participants=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Participants=%v, want %v", got, want)
		}
	}
}
