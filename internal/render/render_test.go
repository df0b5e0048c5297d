package render

import (
	"strings"
	"testing"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/mattn/go-runewidth"
)

const sample = `01.01.24, 09:00 - Ali: Seni seviyorum 😍
01.01.24, 09:05 - Ayşe: Özür dilerim, senin yüzünden geç kaldım
02.01.24, 21:00 - Ali: <Media omitted>
`

func sampleStats(t *testing.T) *analyze.ChatStats {
	t.Helper()
	stats, err := analyze.AnalyzeChat(parse.Parse(sample))
	if err != nil {
		t.Fatalf("AnalyzeChat: %v", err)
	}
	return stats
}

func TestSections(t *testing.T) {
	t.Parallel()
	sections := Sections(sampleStats(t), Options{})
	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	if got := strings.Join(titles, ","); got != "Overview,Ali,Ayşe,Activity,Manipulation,Relationship" {
		t.Fatalf("titles=%q", got)
	}
}

func TestReportPlain(t *testing.T) {
	t.Parallel()
	out := Report(sampleStats(t), Options{})
	if strings.Contains(out, "\033[") {
		t.Errorf("plain report contains ANSI codes")
	}
	for _, want := range []string{
		"Overview\n========",
		"Messages                 3 (3.0 per day)",
		"Participants             Ali, Ayşe",
		"Most romantic            Ali",
		"Most apologetic          Ayşe",
		"Most manipulative        Ayşe",
		"guilt-tripping           1",
		"Most active hour         09:00",
		"image                  1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestParticipantResponseTime(t *testing.T) {
	t.Parallel()
	stats := sampleStats(t)
	ayse, _ := stats.Participant("Ayşe")
	out := Participant(ayse, Options{})
	if !strings.Contains(out, "avg 5.0m, fastest 5.0m, slowest 5.0m (1 replies)") {
		t.Errorf("response line missing:\n%s", out)
	}
	ali, _ := stats.Participant("Ali")
	if out := Participant(ali, Options{}); !strings.Contains(out, "Response time            -") {
		t.Errorf("Ali should have no response time:\n%s", out)
	}
}

func TestReportWidth(t *testing.T) {
	t.Parallel()
	out := Report(sampleStats(t), Options{Width: 40})
	for _, l := range strings.Split(out, "\n") {
		if w := runewidth.StringWidth(l); w > 40 {
			t.Errorf("line wider than 40 (%d): %q", w, l)
		}
	}
}

func TestWrapLineSkipsANSI(t *testing.T) {
	t.Parallel()
	got := wrapLine(colorName+"abcdef"+colorReset, 3)
	if len(got) != 2 {
		t.Fatalf("wrapLine=%q", got)
	}
	if got[0] != colorName+"abc" || got[1] != "def"+colorReset {
		t.Errorf("wrapLine=%q", got)
	}
}

func TestBar(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n, peak, width int
		want           int
	}{
		{0, 10, 40, 0},
		{10, 10, 40, 40},
		{5, 10, 40, 20},
		{1, 100, 40, 1},
	}
	for _, c := range cases {
		if got := runewidth.StringWidth(bar(c.n, c.peak, c.width)); got != c.want {
			t.Errorf("bar(%d,%d,%d) width=%d want %d", c.n, c.peak, c.width, got, c.want)
		}
	}
}
