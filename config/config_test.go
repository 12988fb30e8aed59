package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// Clear any ambient overrides so defaults are actually exercised
	for _, key := range []string{"PORT", "TOKEN_LIFETIME_MINUTES", "MAX_UPLOAD_MB", "ADMIN_PASSWORD", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "5005" {
		t.Errorf("ServerPort: got %q, want 5005", cfg.ServerPort)
	}
	if cfg.TokenLifetimeMin != 60 {
		t.Errorf("TokenLifetimeMin: got %d, want 60", cfg.TokenLifetimeMin)
	}
	if cfg.MaxUploadMB != 5 {
		t.Errorf("MaxUploadMB: got %d, want 5", cfg.MaxUploadMB)
	}
	if cfg.AdminPassword != "" {
		t.Errorf("AdminPassword should default to empty, got %q", cfg.AdminPassword)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_LIFETIME_MINUTES", "15")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: got %q, want 8080", cfg.ServerPort)
	}
	if cfg.TokenLifetimeMin != 15 {
		t.Errorf("TokenLifetimeMin: got %d, want 15", cfg.TokenLifetimeMin)
	}
	// Unparseable numeric env falls back to the default
	if cfg.MaxUploadMB != 5 {
		t.Errorf("MaxUploadMB: got %d, want default 5", cfg.MaxUploadMB)
	}
	if !cfg.Debug {
		t.Error("Debug: got false, want true")
	}
}
