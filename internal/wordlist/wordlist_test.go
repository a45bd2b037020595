package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	paths := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if len(paths) != 10 {
		t.Fatalf("expected 10 default entries, got %d: %v", len(paths), paths)
	}
	want := map[string]bool{"admin": true, ".env": true, "wp-login.php": true}
	got := make(map[string]bool, len(paths))
	for _, p := range paths {
		got[p] = true
	}
	for w := range want {
		if !got[w] {
			t.Errorf("default list missing %q", w)
		}
	}
}

func TestLoadFile(t *testing.T) {
	wl := filepath.Join(t.TempDir(), "wl.txt")
	content := "admin\n\nbackup.zip\n# comment\nsecret/\n"
	if err := os.WriteFile(wl, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths := Load(wl)
	want := []string{"admin", "backup.zip", "secret/"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(paths), paths)
	}
	for i, w := range want {
		if paths[i] != w {
			t.Errorf("entry %d: got %q, want %q", i, paths[i], w)
		}
	}
}

func TestLoadDeduplication(t *testing.T) {
	wl := filepath.Join(t.TempDir(), "wl.txt")
	if err := os.WriteFile(wl, []byte("admin\nadmin\nlogin\nadmin\n"), 0644); err != nil {
		t.Fatal(err)
	}

	paths := Load(wl)
	if len(paths) != 2 {
		t.Errorf("expected 2 deduplicated entries, got %d: %v", len(paths), paths)
	}
}

func TestLoadEmptyFileFallsBack(t *testing.T) {
	wl := filepath.Join(t.TempDir(), "wl.txt")
	if err := os.WriteFile(wl, []byte("\n\n# only comments\n"), 0644); err != nil {
		t.Fatal(err)
	}

	paths := Load(wl)
	if len(paths) != 10 {
		t.Errorf("expected default list for empty wordlist, got %d entries", len(paths))
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a[0] = "mutated"
	b := Default()
	if b[0] == "mutated" {
		t.Error("Default must return a fresh copy")
	}
}
