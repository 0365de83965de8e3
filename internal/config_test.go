package internal

import (
	"strings"
	"testing"

	"github.com/starford/vaultgraph/internal/vault"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestVaultConfig_DefaultsFilled(t *testing.T) {
	cfg := VaultConfig{Path: "./vault"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Suffix != ".md" {
		t.Errorf("suffix = %q, want .md", cfg.Suffix)
	}
	if cfg.Duplicates != vault.DuplicatesWarn {
		t.Errorf("duplicates = %q, want %q", cfg.Duplicates, vault.DuplicatesWarn)
	}
	if cfg.OnReadError != vault.ReadErrorFail {
		t.Errorf("on_read_error = %q, want %q", cfg.OnReadError, vault.ReadErrorFail)
	}
}

func TestVaultConfig_Invalid(t *testing.T) {
	cases := map[string]VaultConfig{
		"missing path":        {Path: ""},
		"suffix without dot":  {Path: "v", Suffix: "md"},
		"unknown duplicates":  {Path: "v", Duplicates: "merge"},
		"unknown read policy": {Path: "v", OnReadError: "retry"},
		"negative workers":    {Path: "v", Workers: -1},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSiteConfig_BaseURLRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty base_url should fail")
	}
	cfg.Site.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("malformed base_url should fail")
	}
}

func TestOutputConfig_FileMustBeName(t *testing.T) {
	cfg := OutputConfig{Dir: "out", File: "../escape.html"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("path-like file name should fail")
	}
}

func TestScanOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.BaseURL = "https://example.org/wiki/"
	cfg.Vault.Workers = 3
	opts := cfg.ScanOptions()
	if opts.BaseURL != "https://example.org/wiki/" || opts.Workers != 3 || opts.Suffix != ".md" {
		t.Errorf("scan options = %+v", opts)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
