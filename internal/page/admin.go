package page

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/Ahmed-3del/portfolio/internal/contact"
	"github.com/Ahmed-3del/portfolio/internal/visitors"
)

// DashboardData feeds the admin dashboard.
type DashboardData struct {
	Visitors        *visitors.Stats
	MessageTotal    int64
	MessagesPending int64
	Now             time.Time
}

func adminShell(title string, body ...g.Node) g.Node {
	return Document(title,
		h.Div(h.Class("container mx-auto px-6 py-10"),
			h.Nav(h.Class("flex space-x-6 mb-8 text-sm uppercase text-gray-300"),
				h.A(h.Href("/admin/dashboard"), g.Text("Dashboard")),
				h.A(h.Href("/admin/messages"), g.Text("Messages")),
				h.A(h.Href("/admin/logout"), g.Text("Log out")),
			),
			g.Group(body),
		),
	)
}

func AdminLogin(errMsg string) g.Node {
	return Document("Admin Login",
		h.Div(h.Class("max-w-sm mx-auto mt-24"),
			h.H1(h.Class("text-2xl font-bold mb-6"), g.Text("Admin Login")),
			g.If(errMsg != "", ContactError(errMsg)),
			g.El("form", h.Method("post"), h.Action("/admin/login"), h.Class("space-y-4 mt-4"),
				field("username", "Username", h.Input(h.Type("text"), h.ID("username"), h.Name("username"), h.Class(inputClass), h.Required())),
				field("password", "Password", h.Input(h.Type("password"), h.ID("password"), h.Name("password"), h.Class(inputClass), h.Required())),
				h.Button(h.Type("submit"), h.Class("w-full bg-green-500 hover:bg-green-600 py-2 rounded-md"), g.Text("Sign in")),
			),
		),
	)
}

func statCard(label string, n int64) g.Node {
	return h.Div(h.Class("bg-gray-800 p-6 rounded-lg"),
		h.P(h.Class("text-gray-400 text-sm"), g.Text(label)),
		h.P(h.Class("text-3xl font-bold"), g.Text(humanize.Comma(n))),
	)
}

func AdminDashboard(d DashboardData) g.Node {
	v := d.Visitors
	if v == nil {
		v = &visitors.Stats{}
	}
	return adminShell("Admin Dashboard",
		h.H1(h.Class("text-3xl font-bold mb-6"), g.Text("Dashboard")),
		h.Div(h.Class("grid grid-cols-2 md:grid-cols-3 gap-4 mb-10"),
			statCard("Total visits", v.TotalVisitors),
			statCard("Unique visitors", v.UniqueVisitors),
			statCard("Visits today", v.VisitorsToday),
			statCard("Visits this week", v.VisitorsThisWeek),
			statCard("Messages", d.MessageTotal),
			statCard("Undelivered messages", d.MessagesPending),
		),
		h.H2(h.Class("text-xl font-semibold mb-4"), g.Text("Recent visits")),
		h.Table(h.Class("w-full text-sm"),
			h.THead(h.Tr(h.Th(g.Text("Visitor")), h.Th(g.Text("Path")), h.Th(g.Text("When")))),
			h.TBody(g.Map(v.RecentVisitors, func(vis visitors.Visit) g.Node {
				return h.Tr(
					h.Td(h.Class("font-mono"), g.Text(vis.HashedIP)),
					h.Td(g.Text(vis.Path)),
					h.Td(g.Text(humanize.RelTime(vis.Timestamp, d.Now, "ago", "from now"))),
				)
			})),
		),
	)
}

func AdminMessages(msgs []contact.Message, now time.Time) g.Node {
	return adminShell("Messages",
		h.H1(h.Class("text-3xl font-bold mb-6"), g.Text("Messages")),
		g.If(len(msgs) == 0, h.P(h.Class("text-gray-400"), g.Text("No messages yet."))),
		h.Div(h.Class("space-y-4"),
			g.Map(msgs, func(m contact.Message) g.Node { return messageCard(m, now) }),
		),
	)
}

// AdminMessage shows one message with a reply link.
func AdminMessage(m contact.Message, now time.Time) g.Node {
	return adminShell("Message from "+m.Name,
		h.A(h.Href("/admin/messages"), h.Class("text-green-400 text-sm"), g.Text("All messages")),
		h.Div(h.Class("mt-4"), messageCard(m, now)),
		h.A(h.Href("mailto:"+m.Email), h.Class("inline-block mt-4 bg-green-500 px-4 py-2 rounded-md"), g.Text("Reply")),
	)
}

func messageCard(m contact.Message, now time.Time) g.Node {
	status, color := "delivered", "text-green-400"
	if !m.Delivered {
		status, color = "not delivered", "text-yellow-400"
	}
	return h.Article(h.ID("msg-"+m.ID), h.Class("bg-gray-800 p-4 rounded-lg"),
		h.Div(h.Class("flex justify-between"),
			h.A(h.Href("/admin/messages/"+m.ID), h.Strong(g.Text(m.Name+" <"+m.Email+">"))),
			h.Span(h.Class("text-sm "+color), g.Text(status)),
		),
		h.P(h.Class("text-gray-400 text-xs mb-2"), g.Text(humanize.RelTime(m.CreatedAt, now, "ago", "from now"))),
		h.P(h.Class("whitespace-pre-line"), g.Text(m.Body)),
		h.Button(h.Class("mt-2 text-red-400 text-sm"),
			g.Attr("hx-delete", "/admin/messages/"+m.ID),
			g.Attr("hx-target", "#msg-"+m.ID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("hx-confirm", "Delete this message?"),
			g.Text("Delete"),
		),
	)
}

// Privacy explains what the visitor tracking keeps and for how long.
func Privacy(retention time.Duration) g.Node {
	keep := "indefinitely"
	if retention > 0 {
		keep = fmt.Sprintf("for %d days", int(retention.Hours()/24))
	}
	return Document("Privacy Policy",
		h.Div(h.Class("max-w-2xl mx-auto px-6 py-16 space-y-4"),
			h.H1(h.Class("text-3xl font-bold"), g.Text("Privacy Policy")),
			h.P(g.Text("Page views are recorded with a salted hash of your IP address, your browser's user agent and the page path. Raw IP addresses are never stored.")),
			h.P(g.Text("Requests carrying a Do Not Track header are not recorded.")),
			h.P(g.Text("Visit records are kept "+keep+".")),
			h.P(g.Text("Messages sent through the contact form are stored so they can be answered.")),
			h.A(h.Href("/"), h.Class("text-green-400"), g.Text("Back to the site")),
		),
	)
}
