package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"  hello  world ", "hello world"},
		{"one\n\ttwo", "onetwo"},
		{"plain", "plain"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.in))
	}
}

func TestFirstInt(t *testing.T) {
	testCases := []struct {
		in       string
		expected int
		ok       bool
	}{
		{"subject_9001", 9001, true},
		{"Posts: 345", 345, true},
		{"42.msg9001", 42, true},
		{"no digits", 0, false},
	}
	for _, test := range testCases {
		v, ok := FirstInt(test.in)
		require.Equal(t, test.ok, ok, test.in)
		require.Equal(t, test.expected, v, test.in)
	}
}

func TestQueryInt(t *testing.T) {
	testCases := []struct {
		href     string
		key      string
		expected int
		ok       bool
	}{
		{"https://forum.example/index.php?action=profile;u=7", "u", 7, true},
		{"https://forum.example/index.php?topic=42.msg9001#msg9001", "topic", 42, true},
		{"https://forum.example/index.php?board=3.0", "u", 0, false},
		{"://bad url", "u", 0, false},
	}
	for _, test := range testCases {
		v, ok := QueryInt(test.href, test.key)
		require.Equal(t, test.ok, ok, test.href)
		require.Equal(t, test.expected, v, test.href)
	}
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<ul>
			<li><a href="/index.php"><span>TBG  Forums</span></a></li>
			<li><a href="/index.php?board=3.0">General</a></li>
		</ul>`,
	))
	require.NoError(t, err)

	anchors := GetAnchors(doc.Find("li a"))
	require.Equal(t, []Anchor{
		{Name: "TBG Forums", Href: "/index.php"},
		{Name: "General", Href: "/index.php?board=3.0"},
	}, anchors)
}
