package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("SessionTimeout = %v", cfg.SessionTimeout)
	}
	if cfg.Campaign.ApprovedAmount != 50000 || cfg.Campaign.MaxTermMonths != 36 {
		t.Errorf("campaign defaults = %+v", cfg.Campaign)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_SESSIONS", "5")
	t.Setenv("CAMPAIGN_APPROVED_AMOUNT", "20000")
	t.Setenv("CAMPAIGN_BIRTH_DATE", "1990-01-31")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9090 || cfg.MaxSessions != 5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Campaign.ApprovedAmount != 20000 || cfg.Campaign.BirthDate != "1990-01-31" {
		t.Errorf("campaign overrides not applied: %+v", cfg.Campaign)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a bad PORT")
	}
}

func TestLoadConfigRejectsBadBirthDate(t *testing.T) {
	t.Setenv("CAMPAIGN_BIRTH_DATE", "31.01.1990")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a bad CAMPAIGN_BIRTH_DATE")
	}
}
