package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// Clear any environment variables to test defaults
	for _, key := range []string{"CONDCTL_TEMPLATE", "CONDCTL_FORMAT", "CONDCTL_TRIALS"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.TemplatePath != "" {
		t.Errorf("Expected empty TemplatePath, got '%s'", cfg.TemplatePath)
	}
	if cfg.Format != "table" {
		t.Errorf("Expected Format='table', got '%s'", cfg.Format)
	}
	if cfg.Trials != 100_000 {
		t.Errorf("Expected Trials=100000, got %d", cfg.Trials)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CONDCTL_TEMPLATE", "/tmp/template.json")
	t.Setenv("CONDCTL_FORMAT", "json")
	t.Setenv("CONDCTL_TRIALS", "500")

	cfg := Load()

	if cfg.TemplatePath != "/tmp/template.json" {
		t.Errorf("Expected TemplatePath='/tmp/template.json', got '%s'", cfg.TemplatePath)
	}
	if cfg.Format != "json" {
		t.Errorf("Expected Format='json', got '%s'", cfg.Format)
	}
	if cfg.Trials != 500 {
		t.Errorf("Expected Trials=500, got %d", cfg.Trials)
	}
}
