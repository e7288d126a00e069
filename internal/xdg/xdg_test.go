package xdg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigHome_Env(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigHome(); got != "/custom/config" {
		t.Errorf("ConfigHome() = %q, want %q", got, "/custom/config")
	}
}

func TestConfigHome_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}
	want := filepath.Join(home, ".config")
	if got := ConfigHome(); got != want {
		t.Errorf("ConfigHome() = %q, want %q", got, want)
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	got := ConfigFile()
	want := filepath.Join("/tmp/xdg-test", "tflite2c", "config.yaml")
	if got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(ConfigDir(), "/tmp/xdg-test") {
		t.Errorf("ConfigDir() = %q, want prefix /tmp/xdg-test", ConfigDir())
	}
}
