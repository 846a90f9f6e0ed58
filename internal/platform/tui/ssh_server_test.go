package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gem-quest/internal/config"
	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

func TestResolveHostKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey() error: %v", err)
	}
	if want := filepath.Join(home, config.AppDir, "host_key"); got != want {
		t.Errorf("default path = %q, want %q", got, want)
	}

	custom := filepath.Join(t.TempDir(), "keys", "id")
	if got, err = resolveHostKey(custom); err != nil || got != custom {
		t.Fatalf("resolveHostKey(%q) = %q, %v", custom, got, err)
	}
	if info, err := os.Stat(filepath.Dir(custom)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestSessionModelDefaultsUser(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), "", nil)
	if m.username != storage.LocalPlayer {
		t.Errorf("username = %q, want %q", m.username, storage.LocalPlayer)
	}
	if m.screen != screenMenu {
		t.Errorf("initial screen = %v, want menu", m.screen)
	}
}
