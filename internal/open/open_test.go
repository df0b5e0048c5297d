package open

import (
	"errors"
	"strings"
	"testing"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

func TestLine(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"Messages are end-to-end encrypted.",
		"01.01.24, 09:00 - A: günaydın",
		"01.01.24, 09:01 - B: senin yüzünden geç kaldık, bu çok uzun bir mesaj",
		"01.01.24, 09:02 - A: Seni seviyorum",
	}, "\n")
	stats, err := analyze.AnalyzeChat(parse.Parse(raw))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		target Target
		want   int
	}{
		{TargetTop, 1},
		{TargetLongest, 3},
		{TargetManipulation, 3},
		{TargetLove, 4},
	}
	for _, c := range cases {
		got, err := Line(stats, c.target)
		if err != nil || got != c.want {
			t.Errorf("Line(%s)=%d,%v want %d", c.target, got, err, c.want)
		}
	}

	if _, err := Line(stats, TargetApology); !errors.Is(err, ErrNoLine) {
		t.Errorf("apology err=%v", err)
	}
	if _, err := Line(stats, "bogus"); err == nil {
		t.Errorf("expected error for unknown target")
	}
}

func TestEditorCommand(t *testing.T) {
	t.Parallel()
	cases := []struct {
		editor string
		want   string
	}{
		{"vim", "vim +7 chat.txt"},
		{"code", "code --goto chat.txt:7"},
		{"less", "less +7 chat.txt"},
		{"nano", "nano chat.txt"},
	}
	for _, c := range cases {
		cmd := editorCommand(c.editor, "chat.txt", 7)
		if got := strings.Join(cmd.Args, " "); got != c.want {
			t.Errorf("%s: args=%q want %q", c.editor, got, c.want)
		}
	}
}

func TestExportRejectsZip(t *testing.T) {
	t.Parallel()
	if err := Export("chat.zip", 3); err == nil {
		t.Fatal("expected error for zip export")
	}
}
