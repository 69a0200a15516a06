// Package htmlutil holds small helpers shared by the goquery-based parsers.
package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a node and its children.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText strips non-printable runes, trims the ends and collapses runs
// of inner whitespace into a single space.
func CleanText(s string) string {
	cleaned := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			cleaned.WriteRune(c)
		}
	}
	out := strings.Trim(cleaned.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// Anchor is a (display name, link) pair pulled out of an <a> tag.
type Anchor struct {
	Name string
	Href string
}

// GetAnchors turns a selection of <a> tags into Anchor values. Anchors
// whose href does not parse as a url are skipped.
func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		anchors = append(anchors, Anchor{
			Name: CleanText(GetText(n)),
			Href: link.String(),
		})
	}
	return anchors
}

var firstIntRegex = regexp.MustCompile(`\d+`)

// FirstInt extracts the first run of digits in s. ok is false when s has
// no digits at all.
func FirstInt(s string) (value int, ok bool) {
	match := firstIntRegex.FindString(s)
	if match == "" {
		return 0, false
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}

// QueryInt reads an integer query parameter out of a link, e.g. the "u" in
// "index.php?action=profile;u=42". SMF separates parameters with semicolons,
// which net/url does not split on, so the raw query is scanned directly.
func QueryInt(href, key string) (value int, ok bool) {
	link, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	for _, part := range strings.FieldsFunc(link.RawQuery, func(r rune) bool {
		return r == ';' || r == '&'
	}) {
		k, v, found := strings.Cut(part, "=")
		if !found || k != key {
			continue
		}
		return FirstInt(v)
	}
	return 0, false
}
