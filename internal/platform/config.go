package platform

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// FlagsConfig holds all boolean or string flags for the app.
type FlagsConfig struct {
	// Headless disables the HTTP server when true.
	Headless bool
	// SessionIdle is how long an unused session interpreter stays in memory.
	SessionIdle time.Duration
}

// AppConfig contains the configuration for the app.
type AppConfig struct {
	Flags      *FlagsConfig
	NatsCfg    *EmbeddedServerConfig
	HTTPSrvCfg *HTTPServerConfig
}

// LoadAppConfig reads .env files when present, then DEVSTATION_* variables
// over the defaults.
func LoadAppConfig(envFiles ...string) *AppConfig {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			slog.Warn("config: cannot load env file", "file", f, "err", err)
		}
	}
	return &AppConfig{
		Flags:      defaultFlagsCfg(),
		NatsCfg:    defaultNatsCfg(),
		HTTPSrvCfg: defaultHTTPServerCfg(),
	}
}

// defaultFlagsCfg returns the default FlagsConfig (from env).
func defaultFlagsCfg() *FlagsConfig {
	return &FlagsConfig{
		Headless:    envBool("DEVSTATION_HEADLESS", false),
		SessionIdle: envDuration("DEVSTATION_SESSION_IDLE", 30*time.Minute),
	}
}

// defaultHTTPServerCfg returns sane defaults for the HTTP server.
func defaultHTTPServerCfg() *HTTPServerConfig {
	return &HTTPServerConfig{
		Port:         envInt("DEVSTATION_PORT", 8080),
		ReadTimeout:  envDuration("DEVSTATION_READ_TIMEOUT", 0),
		WriteTimeout: 0, // SSE responses stay open
		IdleTimeout:  envDuration("DEVSTATION_IDLE_TIMEOUT", 2*time.Minute),
		EnableTLS:    envBool("DEVSTATION_TLS", false),
		CertFile:     envString("DEVSTATION_TLS_CERT", "./local_certs/localhost+2.pem"),
		KeyFile:      envString("DEVSTATION_TLS_KEY", "./local_certs/localhost+2-key.pem"),
		SessionKey:   envString("DEVSTATION_SESSION_KEY", "very-secret-key-change-me"),
	}
}

// defaultNatsCfg returns the default EmbeddedServerConfig.
func defaultNatsCfg() *EmbeddedServerConfig {
	return &EmbeddedServerConfig{
		InProcess:       envBool("DEVSTATION_NATS_IN_PROCESS", true),
		EnableLogging:   true,
		JetStream:       true,
		JetStreamDomain: envString("DEVSTATION_JS_DOMAIN", ""),
		LeafNodeURL:     envString("DEVSTATION_LEAF_URL", ""),
		LeafNodeCreds:   envString("DEVSTATION_LEAF_CREDS", ""),
		StoreDir:        envString("DEVSTATION_STORE_DIR", "./store/js"),
		Port:            envInt("DEVSTATION_NATS_PORT", 4222),
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config: not a boolean", "key", key, "value", v)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config: not an integer", "key", key, "value", v)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config: not a duration", "key", key, "value", v)
		return def
	}
	return d
}
