package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg := LoadAppConfig(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.HTTPSrvCfg.Port != 8080 || cfg.HTTPSrvCfg.EnableTLS {
		t.Fatalf("http defaults %+v", cfg.HTTPSrvCfg)
	}
	if !cfg.NatsCfg.InProcess || !cfg.NatsCfg.JetStream || cfg.NatsCfg.StoreDir != "./store/js" {
		t.Fatalf("nats defaults %+v", cfg.NatsCfg)
	}
	if cfg.Flags.Headless || cfg.Flags.SessionIdle != 30*time.Minute {
		t.Fatalf("flag defaults %+v", cfg.Flags)
	}
}

func TestLoadAppConfigEnv(t *testing.T) {
	t.Setenv("DEVSTATION_PORT", "9999")
	t.Setenv("DEVSTATION_IDLE_TIMEOUT", "30s")
	t.Setenv("DEVSTATION_TLS", "nonsense")
	t.Setenv("DEVSTATION_SESSION_IDLE", "5m")

	file := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(file, []byte("DEVSTATION_HEADLESS=true\nDEVSTATION_SESSION_KEY=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Setenv restores the variables the file loads; godotenv only fills
	// unset ones.
	t.Setenv("DEVSTATION_HEADLESS", "")
	os.Unsetenv("DEVSTATION_HEADLESS")
	t.Setenv("DEVSTATION_SESSION_KEY", "")
	os.Unsetenv("DEVSTATION_SESSION_KEY")

	cfg := LoadAppConfig(file)
	if cfg.HTTPSrvCfg.Port != 9999 {
		t.Fatalf("port = %d", cfg.HTTPSrvCfg.Port)
	}
	if cfg.HTTPSrvCfg.IdleTimeout != 30*time.Second {
		t.Fatalf("idle = %v", cfg.HTTPSrvCfg.IdleTimeout)
	}
	if cfg.Flags.SessionIdle != 5*time.Minute {
		t.Fatalf("session idle = %v", cfg.Flags.SessionIdle)
	}
	if cfg.HTTPSrvCfg.EnableTLS {
		t.Fatalf("invalid bool should fall back to default")
	}
	if !cfg.Flags.Headless || cfg.HTTPSrvCfg.SessionKey != "from-file" {
		t.Fatalf("env file not applied: %+v %+v", cfg.Flags, cfg.HTTPSrvCfg)
	}
}
