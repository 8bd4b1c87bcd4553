package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := Default()
	if cfg.Addr != want.Addr || cfg.DBPath != want.DBPath || cfg.Auth.OTPTTL != want.Auth.OTPTTL {
		t.Errorf("LoadFile() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFile_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chitfund.toml")
	content := `
addr = ":9090"
db_path = "/var/lib/chitfund.db"
group_name = "Unity Savings Group"

[auth]
jwt_secret = "from-file"
otp_ttl = "10m"

[insights]
model = "gemini-2.5-pro"
timeout = "45s"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CHITFUND_JWT_SECRET", "from-env")
	t.Setenv("CHITFUND_LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"addr from file", cfg.Addr, ":9090"},
		{"db path from file", cfg.DBPath, "/var/lib/chitfund.db"},
		{"group name from file", cfg.GroupName, "Unity Savings Group"},
		{"env overrides file", cfg.Auth.JWTSecret, "from-env"},
		{"log level from env", cfg.LogLevel, "debug"},
		{"otp ttl from file", cfg.Auth.OTPTTL, 10 * time.Minute},
		{"token ttl default kept", cfg.Auth.TokenTTL, 24 * time.Hour},
		{"model from file", cfg.Insights.Model, "gemini-2.5-pro"},
		{"timeout from file", cfg.Insights.Timeout, 45 * time.Second},
		{"metrics default kept", cfg.Telemetry.Metrics, true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	t.Setenv("CHITFUND_OTP_TTL", "0s")
	_, err := LoadFile("")
	if err == nil || !strings.Contains(err.Error(), "otp_ttl") {
		t.Errorf("expected otp_ttl validation error, got %v", err)
	}
}
