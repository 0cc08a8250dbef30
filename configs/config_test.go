package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8083 {
		t.Errorf("server.port = %d, expected 8083", cfg.Server.Port)
	}
	if cfg.Replica.Backend != "memory" {
		t.Errorf("replica.backend = %q, expected memory", cfg.Replica.Backend)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Errorf("upstream.timeout = %v, expected 5s", cfg.Upstream.Timeout)
	}
	if cfg.Breaker.MaxFailures != 5 {
		t.Errorf("breaker.max_failures = %d, expected 5", cfg.Breaker.MaxFailures)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
upstream:
  base_url: http://tasks.internal:8081
  timeout: 2s
replica:
  backend: redis
  redis:
    addr: redis.internal:6379
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, expected 9090", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "http://tasks.internal:8081" {
		t.Errorf("upstream.base_url = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 2*time.Second {
		t.Errorf("upstream.timeout = %v, expected 2s", cfg.Upstream.Timeout)
	}
	if cfg.Replica.Backend != "redis" {
		t.Errorf("replica.backend = %q, expected redis", cfg.Replica.Backend)
	}
	if cfg.Replica.Redis.Addr != "redis.internal:6379" {
		t.Errorf("replica.redis.addr = %q", cfg.Replica.Redis.Addr)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "Unknown replica backend",
			content: `
replica:
  backend: cassandra
`,
		},
		{
			name: "Out of range port",
			content: `
server:
  port: 99999
`,
		},
		{
			name: "Zero breaker threshold",
			content: `
breaker:
  max_failures: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig must reject the invalid configuration")
			}
		})
	}
}
