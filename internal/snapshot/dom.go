package snapshot

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minAncestorText is the shortest ancestor text accepted as a field description
const minAncestorText = 10

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hiddenSelf(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "script", "style", "template", "noscript", "head":
		return true
	}
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	if goquery.NodeName(s) == "input" && strings.EqualFold(s.AttrOr("type", ""), "hidden") {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(s.AttrOr("style", "")), " ", "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func visible(s *goquery.Selection) bool {
	for n := s; n.Length() > 0; n = n.Parent() {
		if hiddenSelf(n) {
			return false
		}
	}
	return true
}

func disabled(s *goquery.Selection) bool {
	if _, ok := s.Attr("disabled"); ok {
		return true
	}
	return s.AttrOr("aria-disabled", "") == "true"
}

// visibleText returns the rendered text of s, leaving out hidden descendants
func visibleText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var sb strings.Builder
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				sb.WriteString(c.Text())
				return
			}
			if hiddenSelf(c) {
				return
			}
			sb.WriteString(" ")
			walk(c)
			sb.WriteString(" ")
		})
	}
	walk(s.First())
	return clean(sb.String())
}

// groupQuestion returns the legend of a container, or its first label that is
// not bound to a specific input
func groupQuestion(container *goquery.Selection) string {
	if legend := visibleText(container.Find("legend").First()); legend != "" {
		return legend
	}
	return visibleText(container.Find("label:not([for])").First())
}

// ancestorText returns the text of the nearest ancestor that carries enough text
// to describe the field
func ancestorText(s *goquery.Selection) string {
	for n := s.Parent(); n.Length() > 0; n = n.Parent() {
		if text := visibleText(n); len(text) >= minAncestorText {
			return text
		}
	}
	return ""
}
