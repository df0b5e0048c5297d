package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleChat = `01.03.24, 09:00 - Ayşe: Günaydın seni seviyorum ❤️
01.03.24, 09:05 - Mehmet: Günaydın 😊
01.03.24, 09:06 - Mehmet: <Media omitted>
01.03.24, 21:30 - Ayşe: özür dilerim geç kaldım
02.03.24, 10:00 - Mehmet: tamam`

// setup points HOME at a temp dir and writes the sample export there.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "WhatsApp Chat with Ayşe.txt")
	if err := os.WriteFile(path, []byte(sampleChat), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("wca %s: %v (stderr %q)", strings.Join(args, " "), err, errOut.String())
	}
	return out.String()
}

func TestAnalyzeJSON(t *testing.T) {
	path := setup(t)
	out := run(t, "analyze", "--json", path)

	var got struct {
		TotalMessages int            `json:"totalMessages"`
		MediaStats    map[string]int `json:"mediaStats"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.TotalMessages != 5 {
		t.Errorf("totalMessages=%d, want 5", got.TotalMessages)
	}
	if got.MediaStats["image"] != 1 {
		t.Errorf("mediaStats=%v", got.MediaStats)
	}
}

func TestAnalyzeReport(t *testing.T) {
	path := setup(t)
	out := run(t, "analyze", path)
	for _, want := range []string{"Ayşe", "Mehmet", "01.03.24"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestParticipants(t *testing.T) {
	path := setup(t)
	out := run(t, "participants", path)
	if out != "Ayşe\t2\nMehmet\t3\n" {
		t.Fatalf("participants=%q", out)
	}
}

func TestExportCSVToFile(t *testing.T) {
	path := setup(t)
	dest := filepath.Join(t.TempDir(), "out", "chat.csv")
	run(t, "export", "-f", "csv", "-o", dest, path)

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "section,name,metric,value\n") {
		t.Fatalf("unexpected csv header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	path := setup(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"export", "-f", "xml", path})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for xml format")
	}
}

func TestHistoryLifecycle(t *testing.T) {
	path := setup(t)
	run(t, "analyze", "--save", "--json", path)

	list := run(t, "history", "list")
	if !strings.HasPrefix(list, "1\t") || !strings.Contains(list, "Ayşe") {
		t.Fatalf("history list=%q", list)
	}

	search := run(t, "history", "search", "mehm")
	if !strings.Contains(search, "Ayşe") {
		t.Fatalf("history search=%q", search)
	}

	show := run(t, "history", "show", "--json", "1")
	if !strings.Contains(show, `"totalMessages":5`) {
		t.Fatalf("history show=%q", show)
	}

	if out := run(t, "history", "delete", "1"); out != "Deleted #1\n" {
		t.Fatalf("delete=%q", out)
	}
	if out := run(t, "history", "list"); out != "" {
		t.Fatalf("list after delete=%q", out)
	}
}

func TestDoctor(t *testing.T) {
	path := setup(t)
	out := run(t, "doctor", filepath.Dir(path))
	for _, want := range []string{"=== Config ===", "Text exports: 1", "NOT FOUND"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestChatTitle(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"/x/WhatsApp Chat with Ayşe.txt": "Ayşe",
		"WhatsApp Chat - Family.zip":     "Family",
		"chat.txt":                       "chat",
	}
	for in, want := range cases {
		if got := chatTitle(in); got != want {
			t.Errorf("chatTitle(%q)=%q, want %q", in, got, want)
		}
	}
}
