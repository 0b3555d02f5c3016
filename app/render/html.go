package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/jurbib/digest/app/digest"
)

// HTMLRenderer writes a digest as a standalone page using accordion
// headings: every section becomes a heading with class "accordion"
// followed by a "accordion-content" block holding its contents.
type HTMLRenderer struct {
	proxyPrefix string
}

// NewHTMLRenderer returns a renderer that prefixes journal article links
// with proxyPrefix so readers outside the campus network can open them.
func NewHTMLRenderer(proxyPrefix string) *HTMLRenderer {
	return &HTMLRenderer{proxyPrefix: proxyPrefix}
}

func (r *HTMLRenderer) Run(title string, root *digest.Section) (string, error) {
	if root == nil {
		return "", fmt.Errorf("no section tree to render")
	}

	var buf bytes.Buffer

	buf.WriteString("<html>\n")
	buf.WriteString("  <head>\n")
	buf.WriteString("    <meta charset=\"utf-8\">\n")
	r.writeElement(&buf, "title", title, 4)
	buf.WriteString("  </head>\n")
	buf.WriteString("  <body>\n")

	r.writeElement(&buf, "h1", title, 4)
	r.writeItems(&buf, root.Items, 4)
	for _, child := range root.Children {
		r.writeSection(&buf, child, 2, 4)
	}

	buf.WriteString("  </body>\n")
	buf.WriteString("</html>\n")

	return buf.String(), nil
}

func (r *HTMLRenderer) writeSection(buf *bytes.Buffer, s *digest.Section, level, indent int) {
	tag := fmt.Sprintf("h%d", min(level, 6))

	writeIndent(buf, indent)
	fmt.Fprintf(buf, "<%s class=\"accordion\">%s</%s>\n", tag, html.EscapeString(s.Label), tag)

	writeIndent(buf, indent)
	buf.WriteString("<div class=\"accordion-content\">\n")

	r.writeItems(buf, s.Items, indent+2)
	for _, child := range s.Children {
		r.writeSection(buf, child, level+1, indent+2)
	}

	writeIndent(buf, indent)
	buf.WriteString("</div>\n")
}

// writeItems lists journal articles as a bullet list and catalog items as
// consecutive entries separated by blank lines.
func (r *HTMLRenderer) writeItems(buf *bytes.Buffer, items []digest.Item, indent int) {
	inList := false
	for _, item := range items {
		if item.Kind == digest.KindFeed {
			if !inList {
				writeIndent(buf, indent)
				buf.WriteString("<ul>\n")
				inList = true
			}
			r.writeArticle(buf, item, indent+2)
			continue
		}

		if inList {
			writeIndent(buf, indent)
			buf.WriteString("</ul>\n")
			inList = false
		}
		r.writeBook(buf, item, indent)
	}

	if inList {
		writeIndent(buf, indent)
		buf.WriteString("</ul>\n")
	}
}

func (r *HTMLRenderer) writeArticle(buf *bytes.Buffer, item digest.Item, indent int) {
	writeIndent(buf, indent)
	buf.WriteString("<li>\n")

	r.writeLink(buf, r.proxyPrefix+item.Link, item.Title, indent+2)
	writeIndent(buf, indent+2)
	buf.WriteString("<br>\n")

	if item.Summary != "" {
		r.writeText(buf, item.Summary, indent+2)
	}
	if published := publishedText(item); published != "" {
		r.writeText(buf, "Publisert: "+published, indent+2)
	}

	writeIndent(buf, indent)
	buf.WriteString("</li>\n")
}

func (r *HTMLRenderer) writeBook(buf *bytes.Buffer, item digest.Item, indent int) {
	r.writeLink(buf, item.Link, item.Title, indent)
	r.writeLine(buf, "", indent)

	if item.Author != "" {
		r.writeLine(buf, item.Author, indent)
	}
	if item.Series != "" {
		r.writeLine(buf, "Serie: "+item.Series, indent)
	}

	if item.Edition != "" {
		r.writeText(buf, item.Edition, indent)
	}
	if item.PublicationDate != "" {
		r.writeLine(buf, item.PublicationDate, indent)
	}

	writeIndent(buf, indent)
	buf.WriteString("<br>\n")
}

func (r *HTMLRenderer) writeLink(buf *bytes.Buffer, href, label string, indent int) {
	writeIndent(buf, indent)
	if href == "" {
		buf.WriteString(html.EscapeString(label))
		buf.WriteString("\n")
		return
	}
	fmt.Fprintf(buf, "<a href=\"%s\">%s</a>\n", html.EscapeString(href), html.EscapeString(label))
}

// writeLine writes content followed by a line break. An empty content
// writes the break alone.
func (r *HTMLRenderer) writeLine(buf *bytes.Buffer, content string, indent int) {
	if content != "" {
		r.writeText(buf, content, indent)
	}
	writeIndent(buf, indent)
	buf.WriteString("<br>\n")
}

func (r *HTMLRenderer) writeText(buf *bytes.Buffer, content string, indent int) {
	writeIndent(buf, indent)
	buf.WriteString(html.EscapeString(strings.TrimSpace(content)))
	buf.WriteString("\n")
}

func (r *HTMLRenderer) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	writeIndent(buf, indent)
	fmt.Fprintf(buf, "<%s>%s</%s>\n", tag, html.EscapeString(content), tag)
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

func publishedText(item digest.Item) string {
	if item.PublishedRaw != "" {
		return item.PublishedRaw
	}
	if item.Published != nil {
		return item.Published.Format("2006-01-02")
	}
	return ""
}
