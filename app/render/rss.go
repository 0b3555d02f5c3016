package render

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jurbib/digest/app/cfg"
	"github.com/jurbib/digest/app/digest"
)

// Channel describes the RSS channel a digest is published as.
type Channel struct {
	Title       string
	Link        string
	SelfLink    string
	Description string
	BuiltAt     time.Time
}

type RSSGenerator struct {
	proxyPrefix string
}

func NewRSSGenerator(proxyPrefix string) *RSSGenerator {
	return &RSSGenerator{proxyPrefix: proxyPrefix}
}

// Run flattens the section tree into RSS items. Each item carries the path
// of section labels it was filed under as its category.
func (g *RSSGenerator) Run(channel Channel, root *digest.Section) (string, error) {
	if root == nil {
		return "", fmt.Errorf("no section tree to render")
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", cmp.Or(channel.Description, channel.Title), 4)

	if channel.SelfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(channel.SelfLink)))
	}

	builtAt := channel.BuiltAt
	if builtAt.IsZero() {
		builtAt = time.Now().In(time.Local)
	}
	g.writeElement(&buf, "lastBuildDate", builtAt.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Digest/%s", cfg.GetVersion()), 4)
	g.writeElement(&buf, "language", "no", 4)

	root.Walk(func(path []string, s *digest.Section) {
		category := strings.Join(path, " / ")
		for _, item := range s.Items {
			g.writeItem(&buf, item, category)
		}
	})

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, item digest.Item, category string) {
	buf.WriteString("    <item>\n")

	buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(item.ID)))
	xml.EscapeText(buf, []byte(item.ID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Title, 6)

	link := item.Link
	if item.Kind == digest.KindFeed && link != "" {
		link = g.proxyPrefix + link
	}
	g.writeElement(buf, "link", link, 6)
	g.writeElement(buf, "description", g.description(item), 6)

	if item.Published != nil {
		g.writeElement(buf, "pubDate", item.Published.Format(time.RFC1123Z), 6)
	}
	g.writeElement(buf, "author", item.Author, 6)
	g.writeElement(buf, "category", category, 6)

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) description(item digest.Item) string {
	if item.Kind == digest.KindFeed {
		return cmp.Or(item.Summary, "No description available")
	}

	var parts []string
	if item.Series != "" {
		parts = append(parts, "Serie: "+item.Series)
	}
	if edition := strings.TrimSpace(item.Edition + " " + item.PublicationDate); edition != "" {
		parts = append(parts, edition)
	}
	if item.Kind == digest.KindEbook {
		parts = append(parts, "E-bok")
	}
	return cmp.Or(strings.Join(parts, ". "), "No description available")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *RSSGenerator) isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
