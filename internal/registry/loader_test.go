package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.gguf")
	touch(t, dir, "b.safetensors")
	touch(t, dir, "notes.txt")
	touch(t, dir, "C.GGUF")
	if err := os.Mkdir(filepath.Join(dir, "sub.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 weight files, got %d: %+v", len(out), out)
	}
	for _, r := range out {
		if r.ID == "" || !filepath.IsAbs(r.Path) {
			t.Fatalf("unexpected descriptor: %+v", r)
		}
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandHome("~/models")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got, _ := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path must pass through, got %s", got)
	}
}
