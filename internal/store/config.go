package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Timezone string `yaml:"timezone"`

	MT5 struct {
		BridgeURL string `yaml:"bridge_url"`
		Login     int64  `yaml:"login"`
		Password  string `yaml:"password"`
		Server    string `yaml:"server"`
	} `yaml:"mt5"`

	LLM struct {
		Enabled     bool    `yaml:"enabled"`
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		Temperature float64 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	Telegram struct {
		Enabled bool   `yaml:"enabled"`
		Token   string `yaml:"token"`
		ChatID  int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Schedule struct {
		WeekdayHours []int `yaml:"weekday_hours"`
		WeekendHour  int   `yaml:"weekend_hour"`
	} `yaml:"schedule"`

	RunHistoryDB string `yaml:"run_history_db"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// Location resolves the configured timezone. All four window boundaries are
// computed in this one zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	if c.MT5.BridgeURL == "" {
		return errors.New("mt5.bridge_url is required")
	}
	if c.MT5.Login == 0 {
		return errors.New("mt5.login is required")
	}
	if c.MT5.Password == "" {
		return errors.New("mt5.password is required (or set MT5_PASSWORD)")
	}
	if c.MT5.Server == "" {
		return errors.New("mt5.server is required")
	}
	if c.LLM.Enabled {
		if c.LLM.Provider != "OLLAMA" && c.LLM.Provider != "OPENAI" {
			return fmt.Errorf("llm.provider must be 'OLLAMA' or 'OPENAI', got '%s'", c.LLM.Provider)
		}
		if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
			return fmt.Errorf("llm.temperature must be in [0,1], got %.2f", c.LLM.Temperature)
		}
	}
	if c.Telegram.Enabled {
		if c.Telegram.Token == "" {
			return errors.New("telegram.token is required (or set MT5_TELEGRAM_BOT_TOKEN)")
		}
		if c.Telegram.ChatID == 0 {
			return errors.New("telegram.chat_id is required (or set MT5_TELEGRAM_CHAT_ID)")
		}
	}
	for _, h := range c.Schedule.WeekdayHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("schedule.weekday_hours entry %d out of range", h)
		}
	}
	if c.Schedule.WeekendHour < 0 || c.Schedule.WeekendHour > 23 {
		return fmt.Errorf("schedule.weekend_hour %d out of range", c.Schedule.WeekendHour)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := defaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	applyEnvOverrides(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// defaultConfig seeds the defaults the file is decoded over. Absent keys keep
// these values while an explicit zero in the file (temperature: 0,
// weekend_hour: 0) stays zero.
func defaultConfig() *Config {
	c := &Config{
		Timezone:     "UTC",
		RunHistoryDB: "runs.db",
	}
	c.LLM.Provider = "OLLAMA"
	c.LLM.Model = "llama3.2"
	c.LLM.BaseURL = "http://localhost:11434"
	c.LLM.Temperature = 0.7
	c.LLM.System = "You are an expert trading analyst."
	c.Schedule.WeekdayHours = []int{0, 4, 8, 12, 16, 20}
	c.Schedule.WeekendHour = 23
	return c
}

// Secrets can be kept out of the yaml file and injected via environment.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("MT5_PASSWORD"); v != "" {
		c.MT5.Password = v
	}
	if v := os.Getenv("MT5_LOGIN"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MT5.Login = n
		}
	}
	if v := os.Getenv("MT5_TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("MT5_TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = n
		}
	}
}
