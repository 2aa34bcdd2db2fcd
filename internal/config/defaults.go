package config

import (
	"time"

	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

var (
	DefaultPhrases = []string{
		"Hello, World!",
		"Transforming Ideas into Interactive Interfaces: My Front-End Story.",
		"I am a Front-end Developer with a passion for design and development.",
	}

	DefaultCards = []Card{
		{
			Icon:  "code",
			Title: "Technical Skills",
			Text:  "Proficient in JavaScript, TypeScript, React, Node.js, and modern web technologies.",
		},
		{
			Icon:  "briefcase",
			Title: "Experience",
			Text:  "1.5+ years of experience in developing scalable web applications and solving complex problems.",
		},
		{
			Icon:  "mail",
			Title: "Collaboration",
			Text:  "Strong communicator and team player, always eager to learn and share knowledge.",
		},
	}

	DefaultProjects = []Project{
		{
			Title:       "Building Management System (BMS) Technology Company Website with Integrated Dashboard",
			Description: "A website for a BMS technology company with an integrated dashboard for monitoring and controlling building systems.",
			Technologies: []string{
				"Next.js", "Shadcn UI", "tailwind css", "useSwr",
				"ReduxToolKit", "MongoDB", "Express.js", "Node.js",
			},
			Link: "https://bms-tech.vercel.app/",
		},
	}

	DefaultLinks = []Link{
		{Label: "GitHub", URL: "https://github.com/Ahmed-3del", Icon: "github"},
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/ahmed-adel-1b8466241", Icon: "linkedin"},
	}
)

// DefaultConfig returns the configuration used when site.yaml is absent.
func DefaultConfig() *Config {
	tw := typewriter.DefaultOptions()
	tw.Strings = DefaultPhrases

	return &Config{
		Owner: "A.Ewies",
		Title: "A.Ewies | Front-end Developer",
		Server: ServerConfig{
			Port:         "8080",
			DatabasePath: "data/portfolio.db",
			Mode:         "release",
		},
		Typewriter: tw,
		About:      AboutConfig{Cards: DefaultCards},
		Projects:   DefaultProjects,
		Links:      DefaultLinks,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Retention: 365 * 24 * time.Hour,
	}
}
