// Package page composes the portfolio markup with gomponents.
package page

import (
	"fmt"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ahmed-3del/portfolio/internal/config"
	"github.com/Ahmed-3del/portfolio/internal/section"
)

const (
	tailwindCDN = "https://cdn.tailwindcss.com"
	htmxCDN     = "https://unpkg.com/htmx.org@1.9.12"
)

// Data is everything the home page renders from.
type Data struct {
	Title    string
	Owner    string
	Active   section.ID
	Phrases  []string
	About    config.AboutConfig
	Projects []config.Project
	Links    []config.Link
	Year     int
	// LivePath is the websocket endpoint the page script connects to. An
	// empty path renders a static page with the first phrase already typed.
	LivePath string
}

func FromConfig(cfg *config.Config, active section.ID, now time.Time) Data {
	return Data{
		Title:    cfg.Title,
		Owner:    cfg.Owner,
		Active:   active,
		Phrases:  cfg.Typewriter.Strings,
		About:    cfg.About,
		Projects: cfg.Projects,
		Links:    cfg.Links,
		Year:     now.Year(),
		LivePath: "/live",
	}
}

// Document wraps body in the shared html shell.
func Document(title string, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.Script(h.Src(tailwindCDN)),
				h.Script(h.Src(htmxCDN), h.Defer()),
				h.Link(h.Rel("stylesheet"), h.Href("/static/site.css")),
				h.Script(h.Src("/static/app.js"), h.Defer()),
			),
			h.Body(h.Class("min-h-screen bg-gray-900 text-white"), g.Group(body)),
		),
	)
}

// Home renders the full single-page portfolio.
func Home(d Data) g.Node {
	return Document(d.Title,
		h.Div(g.If(d.LivePath != "", h.Data("live", d.LivePath)),
			NavBar(d.Active),
			h.Main(h.Class("pt-20"),
				Landing(string(section.Home), d.Phrases, d.LivePath == ""),
				AboutSection(string(section.About), d.About),
				ProjectsSection(string(section.Projects), d.Projects),
				ContactSection(string(section.Contact), d.Links),
			),
			Footer(d.Year, d.Owner),
		),
	)
}

// Label is the nav text for a section.
func Label(id section.ID) string {
	return cases.Title(language.English).String(string(id))
}

// NavBar renders one entry per section; the active one is highlighted.
// Entries scroll their section into view from the page script.
func NavBar(active section.ID) g.Node {
	return h.Header(h.Class("fixed top-0 left-0 right-0 z-50 bg-gray-800 bg-opacity-90 backdrop-blur-md"),
		h.Nav(h.Class("container mx-auto px-6 py-4"),
			h.Ul(h.Class("flex justify-center space-x-8"),
				g.Map(section.Order, func(id section.ID) g.Node {
					return h.Li(navButton(id, id == active))
				}),
			),
		),
	)
}

func navButton(id section.ID, active bool) g.Node {
	color := "text-gray-300"
	if active {
		color = "text-green-400"
	}
	return h.Button(
		h.Type("button"),
		h.Class("text-sm uppercase hover:text-white "+color),
		h.Data("section", string(id)),
		g.If(active, h.Aria("current", "true")),
		g.Text(Label(id)),
	)
}

func Footer(year int, owner string) g.Node {
	return h.Footer(h.Class("bg-gray-800 py-8 text-center"),
		h.P(h.Class("text-gray-400"), g.Raw("&copy; "), g.Text(fmt.Sprintf("%d %s. All rights reserved.", year, owner))),
	)
}

func heading(text string) g.Node {
	return h.H2(h.Class("text-4xl font-bold mb-12 text-center"), g.Text(text))
}
