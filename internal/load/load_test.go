package load

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const chat = "01.01.24, 09:00 - A: merhaba\n"

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(chat), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil || got != chat {
		t.Fatalf("Load=%q,%v", got, err)
	}
}

func TestLoadZip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "export.zip")
	writeZip(t, path, map[string]string{"_chat.txt": chat, "IMG-0001.jpg": "x"})
	got, err := Load(path)
	if err != nil || got != chat {
		t.Fatalf("Load=%q,%v", got, err)
	}

	empty := filepath.Join(dir, "empty.zip")
	writeZip(t, empty, map[string]string{"IMG-0001.jpg": "x"})
	if _, err := Load(empty); !errors.Is(err, ErrNoChat) {
		t.Fatalf("err=%v, want ErrNoChat", err)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v", err)
	}
}

func TestFixEncoding(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"plain ascii", "plain ascii"},
		{"\ufeff01.01.24, 09:00 - A: hi", "01.01.24, 09:00 - A: hi"},
		{"gÃ¶rÃ¼ÅŸÃ¼rÃ¼z", "görüşürüz"},
		{"Ã§ok gÃ¼zel\nzaten doğru", "çok güzel\nzaten doğru"},
		{"Ä±lÄ±k", "ılık"},
		{"gülüşüm 😀", "gülüşüm 😀"},
		{"Ãœmit", "Ümit"},
		{"A: ðŸ˜\u008d gÃ¼zel", "A: 😍 güzel"},
		{"ðŸ˜\u008f Ã§ok ðŸ˜\u009d", "😏 çok 😝"},
		{"A: ðŸ˜\ufffd gÃ¼zel", "A: \ufffd\ufffd güzel"},
	}
	for _, c := range cases {
		if got := FixEncoding(c.in); got != c.want {
			t.Errorf("FixEncoding(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestFindExports(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, p := range []string{"a.txt", "sub/b.zip", "sub/c.jpg", ".hidden/d.txt"} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := FindExports(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files=%+v", files)
	}
	kinds := map[string]bool{}
	for _, f := range files {
		kinds[f.Kind] = true
	}
	if !kinds["txt"] || !kinds["zip"] {
		t.Errorf("kinds=%v", kinds)
	}
}
