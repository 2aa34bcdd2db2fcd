package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides: PORTFOLIO_SERVER__PORT -> server.port.
const EnvPrefix = "PORTFOLIO_"

var ErrNoProjects = errors.New("at least one project is required")

// legacyEnv maps the plain variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"PORT":           "server.port",
	"DATABASE_PATH":  "server.database_path",
	"GIN_MODE":       "server.mode",
	"SMTP_HOST":      "smtp.host",
	"SMTP_PORT":      "smtp.port",
	"SMTP_USER":      "smtp.user",
	"SMTP_PASS":      "smtp.pass",
	"TO_EMAIL":       "smtp.to",
	"ADMIN_USERNAME": "admin.username",
	"ADMIN_PASSWORD": "admin.password",
}

func envKey(s string) string {
	if key, ok := legacyEnv[s]; ok {
		return key
	}
	if !strings.HasPrefix(s, EnvPrefix) {
		return ""
	}
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// Load reads configuration from the given YAML file, then overlays
// environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.applyDefaults(k)

	return &cfg, nil
}

// applyDefaults fills every key the sources left unset.
func (c *Config) applyDefaults(k *koanf.Koanf) {
	d := DefaultConfig()

	if c.Owner == "" {
		c.Owner = d.Owner
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Server.Port == "" {
		c.Server.Port = d.Server.Port
	}
	if c.Server.DatabasePath == "" {
		c.Server.DatabasePath = d.Server.DatabasePath
	}
	if c.Server.Mode == "" {
		c.Server.Mode = d.Server.Mode
	}

	tw := &c.Typewriter
	if !k.Exists("typewriter.strings") {
		tw.Strings = d.Typewriter.Strings
	}
	if !k.Exists("typewriter.type_speed") {
		tw.TypeSpeed = d.Typewriter.TypeSpeed
	}
	if !k.Exists("typewriter.back_speed") {
		tw.BackSpeed = d.Typewriter.BackSpeed
	}
	if !k.Exists("typewriter.back_delay") {
		tw.BackDelay = d.Typewriter.BackDelay
	}
	if !k.Exists("typewriter.loop") {
		tw.Loop = d.Typewriter.Loop
	}

	if !k.Exists("about.cards") {
		c.About.Cards = d.About.Cards
	}
	if !k.Exists("projects") {
		c.Projects = d.Projects
	}
	if !k.Exists("links") {
		c.Links = d.Links
	}

	if c.SMTP.Host == "" {
		c.SMTP.Host = d.SMTP.Host
	}
	if c.SMTP.Port == "" {
		c.SMTP.Port = d.SMTP.Port
	}
	if c.Admin.Username == "" {
		c.Admin.Username = d.Admin.Username
	}
	if !k.Exists("retention") {
		c.Retention = d.Retention
	}
}

// Validate checks that the configuration can render a complete page.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if err := c.Typewriter.Validate(); err != nil {
		return fmt.Errorf("typewriter: %w", err)
	}
	if len(c.Projects) == 0 {
		return ErrNoProjects
	}
	for i, p := range c.Projects {
		if p.Title == "" {
			return fmt.Errorf("projects[%d]: title is required", i)
		}
		if err := absoluteURL(p.Link); err != nil {
			return fmt.Errorf("projects[%d]: link: %w", i, err)
		}
	}
	for i, l := range c.Links {
		if err := absoluteURL(l.URL); err != nil {
			return fmt.Errorf("links[%d]: %w", i, err)
		}
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention must be non-negative")
	}
	return nil
}

func absoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}
