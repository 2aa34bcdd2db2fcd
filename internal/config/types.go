package config

import (
	"time"

	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

// Config is the site configuration, corresponding to site.yaml.
type Config struct {
	Owner      string             `koanf:"owner"`
	Title      string             `koanf:"title"`
	Server     ServerConfig       `koanf:"server"`
	Typewriter typewriter.Options `koanf:"typewriter"`
	About      AboutConfig        `koanf:"about"`
	Projects   []Project          `koanf:"projects"`
	Links      []Link             `koanf:"links"`
	SMTP       SMTPConfig         `koanf:"smtp"`
	Admin      AdminConfig        `koanf:"admin"`
	// Retention is how long visitor records are kept.
	Retention time.Duration `koanf:"retention"`
}

type ServerConfig struct {
	Port           string   `koanf:"port"`
	DatabasePath   string   `koanf:"database_path"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	Mode           string   `koanf:"mode"`
}

type AboutConfig struct {
	// Intro is markdown shown above the cards.
	Intro string `koanf:"intro"`
	Cards []Card `koanf:"cards"`
}

type Card struct {
	Icon  string `koanf:"icon"`
	Title string `koanf:"title"`
	Text  string `koanf:"text"`
}

// Project is one entry of the projects section.
type Project struct {
	Title        string   `koanf:"title"`
	Description  string   `koanf:"description"`
	Technologies []string `koanf:"technologies"`
	Link         string   `koanf:"link"`
}

// Link is an outbound profile link shown under the contact form.
type Link struct {
	Label string `koanf:"label"`
	URL   string `koanf:"url"`
	Icon  string `koanf:"icon"`
}

type SMTPConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

// Enabled reports whether credentials are present to relay mail.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}
