package config

import (
	"testing"
	"time"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "glyph.toml", "[editor]\ntab_width = 2\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "other.toml", "[editor]\ntab_width = 3\n")
	writeFile(t, dir, "glyph.toml", "[editor]\ntab_width = 6\n")

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Reloads():
			// A write may be observed half done; wait for the final content.
			if cfg.Editor.TabWidth == 6 {
				return
			}
			if cfg.Editor.TabWidth == 3 {
				t.Fatal("reloaded from a file that is not watched")
			}
		case <-timeout:
			t.Fatal("no reload after the file changed")
		}
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "glyph.toml", "")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, dir, "glyph.toml", "[editor]\ntab_width = 99\n")

	select {
	case err := <-w.Errors():
		if err == nil {
			t.Error("nil error delivered")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error after an invalid write")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(writeFile(t, t.TempDir(), "glyph.toml", ""))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestReplaceKeepsNewest(t *testing.T) {
	ch := make(chan int, 1)
	replace(ch, 1)
	replace(ch, 2)
	if v := <-ch; v != 2 {
		t.Errorf("received %d, want 2", v)
	}
}
