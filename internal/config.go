package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/vaultgraph/internal/identity"
	"github.com/starford/vaultgraph/internal/vault"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	Site   SiteConfig        `yaml:"site"`
	Output OutputConfig      `yaml:"output"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ScanOptions returns the scanner options derived from the vault and site sections.
func (c *Config) ScanOptions() vault.Options {
	return vault.Options{
		Suffix:      c.Vault.Suffix,
		BaseURL:     c.Site.BaseURL,
		Workers:     c.Vault.Workers,
		Duplicates:  c.Vault.Duplicates,
		OnReadError: c.Vault.OnReadError,
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for the live preview.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig describes the vault directory and how it is scanned.
type VaultConfig struct {
	Path        string `yaml:"path"`
	Suffix      string `yaml:"suffix"`
	Workers     int    `yaml:"workers"`
	Duplicates  string `yaml:"duplicates"`
	OnReadError string `yaml:"on_read_error"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	if c.Suffix == "" {
		c.Suffix = identity.DefaultSuffix
	}
	if c.Duplicates == "" {
		c.Duplicates = vault.DuplicatesWarn
	}
	if c.OnReadError == "" {
		c.OnReadError = vault.ReadErrorFail
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Suffix, validation.By(startsWithDot)),
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.Duplicates, validation.In(vault.DuplicatesWarn, vault.DuplicatesOverwrite, vault.DuplicatesReject)),
		validation.Field(&c.OnReadError, validation.In(vault.ReadErrorFail, vault.ReadErrorSkip)),
	)
}

func startsWithDot(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return fmt.Errorf("must be a file extension such as %q", identity.DefaultSuffix)
	}
	return nil
}

// SiteConfig holds the public address space that nodes deep-link into.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
	)
}

// OutputConfig holds where the generated artifact is written.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	File  string `yaml:"file"`
	Title string `yaml:"title"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.File, validation.Required, validation.By(plainFileName)),
	)
}

func plainFileName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("must be a file name, not a path")
	}
	return nil
}

// AuthConfig holds authentication configuration for the live preview server.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path:        "./docs",
			Suffix:      identity.DefaultSuffix,
			Duplicates:  vault.DuplicatesWarn,
			OnReadError: vault.ReadErrorFail,
		},
		Site: SiteConfig{
			BaseURL: "http://localhost:8000/",
		},
		Output: OutputConfig{
			Dir:  "./docs/assets",
			File: "vault_graph.html",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
