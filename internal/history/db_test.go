package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleStats(t *testing.T, raw string) *analyze.ChatStats {
	t.Helper()
	stats, err := analyze.AnalyzeChat(parse.Parse(raw))
	if err != nil {
		t.Fatalf("AnalyzeChat: %v", err)
	}
	return stats
}

func TestSaveGetRoundTrip(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	stats := sampleStats(t, "01.01.24, 09:00 - Ali: Seni seviyorum\n02.01.24, 09:05 - Ayşe: Özür dilerim\n")

	id, err := db.Save("Ali & Ayşe", "/tmp/chat.txt", stats)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := db.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Ali & Ayşe" || got.SourcePath != "/tmp/chat.txt" || got.TotalMessages != 2 {
		t.Errorf("entry=%+v", got)
	}
	if got.StartDate != "01.01.24" || got.EndDate != "02.01.24" {
		t.Errorf("dates=%s..%s", got.StartDate, got.EndDate)
	}
	if len(got.Participants) != 2 || got.Participants[0] != "Ali" || got.Participants[1] != "Ayşe" {
		t.Errorf("Participants=%q", got.Participants)
	}
	if got.Stats == nil || got.Stats.Relationship.MostRomantic != "Ali" {
		t.Fatalf("Stats=%+v", got.Stats)
	}
	if names := got.Stats.Participants(); len(names) != 2 || names[0] != "Ali" {
		t.Errorf("decoded participant order=%q", names)
	}

	ver, err := db.SchemaVersion()
	if err != nil || ver != schemaVersion {
		t.Errorf("SchemaVersion=%q,%v", ver, err)
	}
}

func TestGetDeleteMissing(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	if _, err := db.Get(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err=%v", err)
	}
	if err := db.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	stats := sampleStats(t, "01.01.24, 09:00 - A: hi\n")

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return clock }
	first, err := db.Save("first", "", stats)
	if err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(48 * time.Hour)
	second, err := db.Save("second", "", stats)
	if err != nil {
		t.Fatal(err)
	}

	all, err := db.List(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != second || all[1].ID != first {
		t.Fatalf("List=%+v", all)
	}
	if all[0].Stats != nil {
		t.Errorf("List should not decode stats")
	}

	recent, err := db.List(Options{Since: clock.Add(-time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Title != "second" {
		t.Errorf("Since filter=%+v", recent)
	}

	limited, err := db.List(Options{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("Limit=%d", len(limited))
	}

	if err := db.Delete(first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, err := db.Count(); err != nil || n != 1 {
		t.Errorf("Count=%d,%v", n, err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	if _, err := db.Save("weekend trip", "", sampleStats(t, "01.01.24, 09:00 - Mehmet: selam\n01.01.24, 09:01 - Zeynep: selam\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Save("family ❤️", "", sampleStats(t, "01.01.24, 09:00 - Annem: günaydın\n")); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		query string
		want  string
	}{
		{"zeyn", "weekend trip"},
		{"weekend", "weekend trip"},
		{"annem", "family ❤️"},
		{"❤️", "family ❤️"},
		{`"trip`, "weekend trip"},
	}
	for _, c := range cases {
		res, err := db.Search(c.query, 0)
		if err != nil {
			t.Fatalf("Search(%q): %v", c.query, err)
		}
		if len(res) != 1 || res[0].Title != c.want {
			t.Errorf("Search(%q)=%+v want %q", c.query, res, c.want)
		}
	}

	if res, err := db.Search("nobody", 0); err != nil || len(res) != 0 {
		t.Errorf("Search(nobody)=%+v,%v", res, err)
	}
	if res, err := db.Search("   ", 0); err != nil || res != nil {
		t.Errorf("blank query=%+v,%v", res, err)
	}
}

func TestMakeSnippet(t *testing.T) {
	t.Parallel()
	got := makeSnippet("family ❤️ chat", "❤️", 3)
	if got != "...ly >>>❤️<<< ch..." {
		t.Errorf("makeSnippet=%q", got)
	}
}
