package page

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	g "maragu.dev/gomponents"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// Built once; safe for concurrent use.
	sanitizer = bluemonday.UGCPolicy()
)

// Markdown renders src as sanitised HTML. Unparseable input is shown as text.
func Markdown(src string) g.Node {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return g.Text(src)
	}
	return g.Raw(string(sanitizer.SanitizeBytes(buf.Bytes())))
}
