package page

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/Ahmed-3del/portfolio/internal/config"
	"github.com/Ahmed-3del/portfolio/internal/contact"
	"github.com/Ahmed-3del/portfolio/internal/section"
	"github.com/Ahmed-3del/portfolio/internal/visitors"
)

func render(t *testing.T, n g.Node) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc
}

func homeData(active section.ID) Data {
	return FromConfig(config.DefaultConfig(), active, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestHomeRendersSectionsInOrder(t *testing.T) {
	doc := render(t, Home(homeData(section.Home)))

	var ids []string
	doc.Find("main > section").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	assert.Equal(t, []string{"home", "about", "projects", "contact"}, ids)

	live, ok := doc.Find("[data-live]").Attr("data-live")
	require.True(t, ok)
	assert.Equal(t, "/live", live)
	assert.Equal(t, 1, doc.Find("[data-typewriter]").Length())
}

func TestNavHighlightsActiveSection(t *testing.T) {
	doc := render(t, Home(homeData(section.Projects)))

	buttons := doc.Find("header nav button[data-section]")
	require.Equal(t, len(section.Order), buttons.Length())

	var labels []string
	buttons.Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
		id, _ := s.Attr("data-section")
		_, current := s.Attr("aria-current")
		class, _ := s.Attr("class")
		if id == string(section.Projects) {
			assert.True(t, current)
			assert.Contains(t, class, "text-green-400")
		} else {
			assert.False(t, current, id)
			assert.NotContains(t, class, "text-green-400", id)
		}
	})
	assert.Equal(t, []string{"Home", "About", "Projects", "Contact"}, labels)
}

func TestFooterShowsYearAndOwner(t *testing.T) {
	doc := render(t, Home(homeData(section.Home)))
	text := doc.Find("footer").Text()
	assert.Contains(t, text, "2026 A.Ewies. All rights reserved.")
}

func TestProjectsRenderWithLinks(t *testing.T) {
	d := homeData(section.Home)
	doc := render(t, Home(d))

	cards := doc.Find("#projects h3")
	require.Equal(t, len(d.Projects), cards.Length())
	assert.Equal(t, d.Projects[0].Title, cards.First().Text())

	href, _ := doc.Find("#projects a[target=_blank]").First().Attr("href")
	assert.Equal(t, d.Projects[0].Link, href)
	assert.Equal(t, len(d.Projects[0].Technologies), doc.Find("#projects span.text-green-400").Length())
}

func TestNoscriptListsPhrases(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Landing("home", []string{"first", "second"}, false).Render(&buf))
	assert.Contains(t, buf.String(), "<noscript>")
	assert.Contains(t, buf.String(), "<li>first</li>")
	assert.Contains(t, buf.String(), "<li>second</li>")
}

func TestStaticHomePrefillsFirstPhrase(t *testing.T) {
	d := homeData(section.Home)
	d.LivePath = ""
	doc := render(t, Home(d))
	assert.Equal(t, 0, doc.Find("[data-live]").Length())
	assert.Equal(t, d.Phrases[0], doc.Find("[data-typewriter]").Text())
}

func TestMarkdownIsSanitised(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("Hello **world** <script>alert(1)</script>").Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "<strong>world</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestContactFormPostsWithHtmx(t *testing.T) {
	doc := render(t, Home(homeData(section.Home)))
	form := doc.Find("#contact form")
	post, _ := form.Attr("hx-post")
	target, _ := form.Attr("hx-target")
	assert.Equal(t, "/contact", post)
	assert.Equal(t, "#contact-result", target)
	for _, name := range []string{"name", "email", "message"} {
		assert.Equal(t, 1, form.Find("[name="+name+"]").Length(), name)
	}
	assert.Equal(t, 1, doc.Find("#contact-result").Length())
}

func TestContactFragmentsEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ContactError("<b>bad</b>").Render(&buf))
	assert.Contains(t, buf.String(), `role="alert"`)
	assert.Contains(t, buf.String(), "&lt;b&gt;bad&lt;/b&gt;")
}

func TestAdminDashboardFormatsCounts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := render(t, AdminDashboard(DashboardData{
		Visitors: &visitors.Stats{
			TotalVisitors:  12345,
			UniqueVisitors: 7,
			RecentVisitors: []visitors.Visit{{HashedIP: "abcd", Path: "/", Timestamp: now.Add(-2 * time.Hour)}},
		},
		MessageTotal: 3,
		Now:          now,
	}))
	text := doc.Text()
	assert.Contains(t, text, "12,345")
	assert.Contains(t, text, "2 hours ago")
	assert.Equal(t, 1, doc.Find("tbody tr").Length())
}

func TestAdminMessagesDeleteButton(t *testing.T) {
	now := time.Now()
	doc := render(t, AdminMessages([]contact.Message{
		{ID: "m1", Name: "Ann", Email: "ann@example.com", Body: "hi", CreatedAt: now, Delivered: false},
	}, now))
	del, _ := doc.Find("#msg-m1 button").Attr("hx-delete")
	assert.Equal(t, "/admin/messages/m1", del)
	assert.Contains(t, doc.Find("#msg-m1").Text(), "not delivered")
}

func TestAdminMessageLinksReply(t *testing.T) {
	now := time.Now()
	doc := render(t, AdminMessage(contact.Message{ID: "m2", Name: "Bo", Email: "bo@example.com", Body: "hey", CreatedAt: now, Delivered: true}, now))
	href, _ := doc.Find(`a[href^="mailto:"]`).Attr("href")
	assert.Equal(t, "mailto:bo@example.com", href)
	assert.Contains(t, doc.Find("#msg-m2").Text(), "delivered")
}

func TestPrivacyRetention(t *testing.T) {
	doc := render(t, Privacy(30*24*time.Hour))
	assert.Contains(t, doc.Text(), "for 30 days")

	doc = render(t, Privacy(0))
	assert.Contains(t, doc.Text(), "indefinitely")
}
