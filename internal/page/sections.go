package page

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/Ahmed-3del/portfolio/internal/config"
)

// Landing is the hero section. The typed text is filled in by the live
// session; a static page shows the first phrase instead.
func Landing(id string, phrases []string, static bool) g.Node {
	var initial string
	if static && len(phrases) > 0 {
		initial = phrases[0]
	}
	return h.Section(h.ID(id), h.Class("min-h-screen relative w-full flex items-center justify-center bg-gray-900"),
		h.Div(h.Class("container mx-auto w-[60%] px-6 text-center"),
			h.H1(h.Class("text-3xl h-40 md:text-4xl font-bold mb-6 fade-down"),
				h.Span(h.Data("typewriter", ""), g.Text(initial)),
				h.Span(h.Class("typed-cursor"), h.Aria("hidden", "true"), g.Text("|")),
			),
			g.El("noscript",
				h.Ul(h.Class("text-xl text-gray-300 mb-6"),
					g.Map(phrases, func(p string) g.Node { return h.Li(g.Text(p)) }),
				),
			),
			h.Div(h.Class("fade-up"),
				h.A(h.Href("#projects"),
					h.Class("inline-flex items-center bg-green-500 hover:bg-green-600 text-white px-8 py-3 rounded-full text-lg"),
					g.Text("Explore My Work"),
					icon("chevron-right", "ml-2 w-5 h-5"),
				),
			),
		),
	)
}

func AboutSection(id string, about config.AboutConfig) g.Node {
	return h.Section(h.ID(id), h.Class("py-20 bg-gray-800"),
		h.Div(h.Class("container mx-auto px-6"),
			heading("About Me"),
			g.If(about.Intro != "",
				h.Div(h.Class("prose prose-invert max-w-3xl mx-auto mb-12"), Markdown(about.Intro)),
			),
			h.Div(h.Class("grid grid-cols-1 md:grid-cols-3 gap-8"),
				g.Map(about.Cards, func(c config.Card) g.Node {
					return h.Div(h.Class("bg-gray-700 p-6 rounded-lg reveal"),
						icon(c.Icon, "text-green-400 w-12 h-12 mb-4"),
						h.H3(h.Class("text-xl font-semibold mb-2"), g.Text(c.Title)),
						h.P(g.Text(c.Text)),
					)
				}),
			),
		),
	)
}

func ProjectsSection(id string, projects []config.Project) g.Node {
	return h.Section(h.ID(id), h.Class("py-20 bg-gray-900"),
		h.Div(h.Class("container mx-auto px-6"),
			heading("Featured Projects"),
			h.Div(h.Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8"),
				g.Map(projects, projectCard),
			),
		),
	)
}

func projectCard(p config.Project) g.Node {
	return h.Div(h.Class("bg-gray-800 rounded-lg overflow-hidden shadow-lg reveal"),
		h.Div(h.Class("p-6"),
			h.H3(h.Class("text-xl font-semibold mb-2"), g.Text(p.Title)),
			h.P(h.Class("text-gray-400 mb-4"), g.Text(p.Description)),
			h.Div(h.Class("flex flex-wrap gap-2 mb-4"),
				g.Map(p.Technologies, func(tech string) g.Node {
					return h.Span(h.Class("bg-gray-700 text-green-400 px-2 py-1 rounded text-sm"), g.Text(tech))
				}),
			),
			externalLink(p.Link, "inline-flex items-center text-green-400 hover:text-green-300",
				g.Text("View Project"), icon("external-link", "ml-2 w-4 h-4"),
			),
		),
	)
}

const inputClass = "w-full px-3 py-2 bg-gray-700 border border-gray-600 rounded-md text-white focus:outline-none focus:ring-2 focus:ring-green-500"

func ContactSection(id string, links []config.Link) g.Node {
	return h.Section(h.ID(id), h.Class("py-20 bg-gray-800"),
		h.Div(h.Class("container mx-auto px-6"),
			heading("Get In Touch"),
			h.Div(h.Class("max-w-md mx-auto reveal"),
				g.El("form", h.Class("space-y-6"),
					h.Method("post"), h.Action("/contact"),
					g.Attr("hx-post", "/contact"),
					g.Attr("hx-target", "#contact-result"),
					g.Attr("hx-swap", "innerHTML"),
					field("name", "Name", h.Input(h.Type("text"), h.ID("name"), h.Name("name"), h.Class(inputClass), h.Required())),
					field("email", "Email", h.Input(h.Type("email"), h.ID("email"), h.Name("email"), h.Class(inputClass), h.Required())),
					field("message", "Message", h.Textarea(h.ID("message"), h.Name("message"), g.Attr("rows", "4"), h.Class(inputClass), h.Required())),
					h.Div(
						h.Button(h.Type("submit"),
							h.Class("w-full bg-green-500 hover:bg-green-600 text-white py-2 px-4 rounded-md transition duration-300"),
							g.Text("Send Message"),
						),
					),
				),
				h.Div(h.ID("contact-result"), h.Class("mt-6"), h.Aria("live", "polite")),
			),
			g.If(len(links) > 0,
				h.Div(h.Class("mt-12 text-center reveal"),
					h.P(h.Class("text-xl mb-4"), g.Text("Or connect with me on:")),
					h.Div(h.Class("flex justify-center space-x-4"),
						g.Map(links, func(l config.Link) g.Node {
							return externalLink(l.URL, "text-gray-400 hover:text-white",
								h.Aria("label", l.Label), icon(l.Icon, "w-8 h-8"),
							)
						}),
					),
				),
			),
		),
	)
}

func field(id, label string, control g.Node) g.Node {
	return h.Div(
		g.El("label", h.For(id), h.Class("block text-sm font-medium text-gray-300 mb-2"), g.Text(label)),
		control,
	)
}

func externalLink(href, class string, children ...g.Node) g.Node {
	return h.A(h.Href(href), h.Target("_blank"), h.Rel("noopener noreferrer"), h.Class(class), g.Group(children))
}

// ContactSuccess and ContactError are the fragments swapped into #contact-result.
func ContactSuccess(msg string) g.Node {
	return h.Div(h.Class("p-4 rounded-md bg-green-900 text-green-200"), g.Attr("role", "status"), g.Text(msg))
}

func ContactError(msg string) g.Node {
	return h.Div(h.Class("p-4 rounded-md bg-red-900 text-red-200"), g.Attr("role", "alert"), g.Text(msg))
}
