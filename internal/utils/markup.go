package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Markup styles
func BoldStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func ItalicStyle() lipgloss.Style {
	return lipgloss.NewStyle().Italic(true)
}

func UnderlineStyle() lipgloss.Style {
	return lipgloss.NewStyle().Underline(true)
}

func CodeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))
}

// dialogPolicy is the sanitization boundary for dialog content: markup the
// application sends is trusted by the bridge and filtered here, right
// before it is drawn.
var dialogPolicy = newDialogPolicy()

func newDialogPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "code", "pre", "br", "p", "div", "span", "ul", "ol", "li")
	return p
}

// SanitizeMarkup drops every element and attribute the terminal cannot render
func SanitizeMarkup(fragment string) string {
	return dialogPolicy.Sanitize(fragment)
}

// RenderMarkup turns an HTML fragment into styled terminal text
func RenderMarkup(fragment string) string {
	safe := SanitizeMarkup(fragment)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(safe))
	if err != nil {
		return safe
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return strings.TrimSpace(doc.Text())
	}

	var b strings.Builder
	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		renderNode(&b, c, lipgloss.NewStyle())
	}

	return strings.TrimSpace(collapseBlankLines(b.String()))
}

func renderNode(b *strings.Builder, n *html.Node, style lipgloss.Style) {
	switch n.Type {
	case html.TextNode:
		if text := StripControl(n.Data); text != "" {
			b.WriteString(style.Render(text))
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "br":
		b.WriteString("\n")
		return
	case "b", "strong":
		style = style.Inherit(BoldStyle())
	case "i", "em":
		style = style.Inherit(ItalicStyle())
	case "u":
		style = style.Inherit(UnderlineStyle())
	case "code", "pre":
		style = style.Inherit(CodeStyle())
	case "li":
		b.WriteString("• ")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c, style)
	}

	switch n.Data {
	case "p", "div", "li", "ul", "ol", "pre":
		b.WriteString("\n")
	}
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
