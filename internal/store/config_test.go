package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
mt5:
  bridge_url: http://localhost:5001
  login: 12345678
  password: secret
  server: Demo-Server
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC default", cfg.Timezone)
	}
	if cfg.LLM.Provider != "OLLAMA" || cfg.LLM.Model != "llama3.2" {
		t.Errorf("llm defaults = %q/%q", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
	if len(cfg.Schedule.WeekdayHours) != 6 || cfg.Schedule.WeekendHour != 23 {
		t.Errorf("schedule defaults = %v/%d", cfg.Schedule.WeekdayHours, cfg.Schedule.WeekendHour)
	}
	if cfg.RunHistoryDB != "runs.db" {
		t.Errorf("RunHistoryDB = %q", cfg.RunHistoryDB)
	}
}

func TestLoadConfigFull(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
timezone: Europe/London
mt5:
  bridge_url: http://bridge:5001
  login: 111
  password: pw
  server: Live-02
llm:
  enabled: true
  provider: OPENAI
  model: gpt-4o-mini
  temperature: 0.3
telegram:
  enabled: true
  token: bot-token
  chat_id: -100200300
schedule:
  weekday_hours: [8, 20]
  weekend_hour: 21
run_history_db: /var/lib/bot/runs.db
metrics_addr: ":9187"
`))
	if err != nil {
		t.Fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/London" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
	if cfg.LLM.Provider != "OPENAI" || cfg.LLM.Temperature != 0.3 {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Telegram.ChatID != -100200300 {
		t.Errorf("ChatID = %d", cfg.Telegram.ChatID)
	}
	if len(cfg.Schedule.WeekdayHours) != 2 {
		t.Errorf("WeekdayHours = %v", cfg.Schedule.WeekdayHours)
	}
}

func TestLoadConfigExplicitZeroValues(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig+`
llm:
  enabled: true
  provider: OLLAMA
  temperature: 0
schedule:
  weekend_hour: 0
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.Temperature != 0 {
		t.Errorf("Temperature = %v, want configured 0 to survive", cfg.LLM.Temperature)
	}
	if cfg.Schedule.WeekendHour != 0 {
		t.Errorf("WeekendHour = %d, want configured 0 (midnight) to survive", cfg.Schedule.WeekendHour)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MT5_PASSWORD", "env-secret")
	t.Setenv("MT5_LOGIN", "99887766")
	t.Setenv("MT5_TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("MT5_TELEGRAM_CHAT_ID", "424242")

	cfg, err := LoadConfig(writeConfig(t, `
mt5:
  bridge_url: http://localhost:5001
  login: 1
  password: from-file
  server: Demo
telegram:
  enabled: true
  token: file-token
  chat_id: 1
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MT5.Password != "env-secret" || cfg.MT5.Login != 99887766 {
		t.Errorf("mt5 overrides = %q/%d", cfg.MT5.Password, cfg.MT5.Login)
	}
	if cfg.Telegram.Token != "env-token" || cfg.Telegram.ChatID != 424242 {
		t.Errorf("telegram overrides = %q/%d", cfg.Telegram.Token, cfg.Telegram.ChatID)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing bridge url", "mt5:\n  login: 1\n  password: p\n  server: s\n", "bridge_url"},
		{"missing login", "mt5:\n  bridge_url: http://x\n  password: p\n  server: s\n", "login"},
		{"missing password", "mt5:\n  bridge_url: http://x\n  login: 1\n  server: s\n", "password"},
		{"bad timezone", "timezone: Mars/Olympus\n" + minimalConfig, "timezone"},
		{"bad provider", minimalConfig + "llm:\n  enabled: true\n  provider: CLAUDE\n", "provider"},
		{"temperature out of range", minimalConfig + "llm:\n  enabled: true\n  provider: OLLAMA\n  temperature: 1.5\n", "temperature"},
		{"telegram without token", minimalConfig + "telegram:\n  enabled: true\n  chat_id: 5\n", "token"},
		{"weekday hour out of range", minimalConfig + "schedule:\n  weekday_hours: [4, 24]\n", "weekday_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
