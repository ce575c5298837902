package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: false},
		{name: "empty base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "base url without host", mutate: func(c *Config) { c.BaseURL = "/relative/path" }, wantErr: true},
		{name: "empty item selector", mutate: func(c *Config) { c.ItemSelector = "" }, wantErr: true},
		{name: "empty next selector", mutate: func(c *Config) { c.NextSelector = "" }, wantErr: true},
		{name: "zero max pages", mutate: func(c *Config) { c.MaxPages = 0 }, wantErr: true},
		{name: "negative page delay", mutate: func(c *Config) { c.PageDelay = -time.Second }, wantErr: true},
		{name: "zero page delay ok", mutate: func(c *Config) { c.PageDelay = 0 }, wantErr: false},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: true},
		{name: "empty user agent", mutate: func(c *Config) { c.UserAgent = "" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "carrier-pigeon" }, wantErr: true},
		{name: "browser provider ok", mutate: func(c *Config) { c.Provider = ProviderBrowser }, wantErr: false},
		{name: "empty output file", mutate: func(c *Config) { c.OutputFile = "" }, wantErr: true},
		{name: "unknown output format", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: true},
		{name: "dual output format ok", mutate: func(c *Config) { c.OutputFormat = "dual" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("INSIGHTS_TEST_INT", "12")
	if v, ok, err := EnvInt("INSIGHTS_TEST_INT"); err != nil || !ok || v != 12 {
		t.Errorf("EnvInt = (%d, %v, %v), want (12, true, nil)", v, ok, err)
	}

	t.Setenv("INSIGHTS_TEST_INT", "twelve")
	if _, _, err := EnvInt("INSIGHTS_TEST_INT"); err == nil {
		t.Errorf("EnvInt should fail on a non-integer value")
	}

	if _, ok, err := EnvInt("INSIGHTS_TEST_UNSET"); ok || err != nil {
		t.Errorf("EnvInt on unset variable = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestEnvString(t *testing.T) {
	t.Setenv("INSIGHTS_TEST_STR", "value")
	if v, ok := EnvString("INSIGHTS_TEST_STR"); !ok || v != "value" {
		t.Errorf("EnvString = (%q, %v), want (value, true)", v, ok)
	}

	if _, ok := EnvString("INSIGHTS_TEST_STR_UNSET"); ok {
		t.Errorf("EnvString on unset variable should report absence")
	}
}
