package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Generate.ClientType != "fast_http" {
		t.Errorf("client type = %q", cfg.Generate.ClientType)
	}
	if cfg.Generate.TaskWeight != 1 {
		t.Errorf("task weight = %d", cfg.Generate.TaskWeight)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	content := `addr: ":9999"
shutdown_grace: 3s
generate:
  client_type: requests
  task_weight: 2
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.ShutdownGrace != 3*time.Second {
		t.Errorf("shutdown grace = %v", cfg.ShutdownGrace)
	}
	if cfg.Generate.ClientType != "requests" || cfg.Generate.TaskWeight != 2 {
		t.Errorf("generate defaults = %+v", cfg.Generate)
	}
	// Values the file omits keep their defaults.
	if cfg.Generate.UserClassName != "GeneratedUser" {
		t.Errorf("user class name = %q", cfg.Generate.UserClassName)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadConfig_WeightFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("generate:\n  task_weight: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generate.TaskWeight != 1 {
		t.Errorf("task weight should floor at 1, got %d", cfg.Generate.TaskWeight)
	}
}
