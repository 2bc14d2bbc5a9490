package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SMTP_PORT", "")

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("default smtp port = %d, want 587", cfg.SMTPPort)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_URL", "user:pass@tcp(localhost:3306)/eventhub?parseTime=true")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("FRONTEND_URL", "https://tickets.example.com")

	cfg := LoadConfig()
	if cfg.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Port)
	}
	if cfg.DBUrl == "" {
		t.Error("db url not read from environment")
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("smtp port = %d, want 2525", cfg.SMTPPort)
	}
	if cfg.FrontendURL != "https://tickets.example.com" {
		t.Errorf("frontend url = %q", cfg.FrontendURL)
	}
}

func TestLoadConfigBadSMTPPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := LoadConfig()
	if cfg.SMTPPort != 587 {
		t.Errorf("smtp port = %d, want fallback 587", cfg.SMTPPort)
	}
}
