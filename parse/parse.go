// Package parse turns raw SMF markup into structured records. It knows
// nothing about sessions or entities; the forum package casts its output
// into typed objects.
package parse

import (
	"fmt"
	"path"
	"strings"

	"tbgclient/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// UserInfo is the raw poster block scraped out of a post. Absent fields
// are nil.
type UserInfo struct {
	UID    *int
	Name   *string
	Avatar *string
	Group  *string
	Posts  *int
}

// Post is one raw message record scraped out of a topic page.
type Post struct {
	TID     *int
	MID     *int
	Subject *string
	Date    *string
	Edited  *string
	Content *string
	User    *UserInfo
	Icon    *string
}

// Page is one parsed forum page: where it sits in the forum (hierarchy),
// where it sits in its pagination, and the raw records extracted from it.
type Page[R any] struct {
	Hierarchy   []htmlutil.Anchor
	CurrentPage int
	TotalPages  int
	Contents    []R
}

// Extractor pulls the page-specific content records out of a document.
type Extractor[R any] func(doc *goquery.Document) ([]R, error)

// ParsePage decodes the parts shared by every forum page (linktree,
// pagelinks) and delegates the contents to the given extractor.
func ParsePage[R any](text string, extract Extractor[R]) (Page[R], error) {
	var page Page[R]

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return page, err
	}

	page.Hierarchy = htmlutil.GetAnchors(doc.Find("div.navigate_section ul li a"))
	page.CurrentPage, page.TotalPages = parsePagelinks(doc)

	page.Contents, err = extract(doc)
	if err != nil {
		return page, err
	}
	return page, nil
}

// parsePagelinks reads the ".pagelinks" strip. The current page is the
// bolded number; the total is the highest number present in the strip.
// Pages without a strip count as page 1 of 1.
func parsePagelinks(doc *goquery.Document) (current, total int) {
	current, total = 1, 1

	links := doc.Find("div.pagelinks").First()
	if n, ok := htmlutil.FirstInt(links.Find("strong").First().Text()); ok {
		current = n
	}
	total = current
	links.Find("strong, a.navPages").Each(func(_ int, s *goquery.Selection) {
		if n, ok := htmlutil.FirstInt(s.Text()); ok && n > total {
			total = n
		}
	})
	return current, total
}

// TopicContent extracts the posts of a topic page.
func TopicContent(doc *goquery.Document) ([]Post, error) {
	var posts []Post
	var firstErr error

	doc.Find("div.post_wrapper").Each(func(i int, wrapper *goquery.Selection) {
		post, err := parsePost(wrapper)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("post %d: %w", i, err)
			return
		}
		posts = append(posts, post)
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return posts, nil
}

func parsePost(wrapper *goquery.Selection) (Post, error) {
	var post Post

	subjectHeader := wrapper.Find("h5[id^='subject_']").First()
	if subjectHeader.Length() == 0 {
		return post, fmt.Errorf("post has no subject header")
	}
	if mid, ok := htmlutil.FirstInt(subjectHeader.AttrOr("id", "")); ok {
		post.MID = &mid
	}

	subjectLink := subjectHeader.Find("a").First()
	subject := htmlutil.CleanText(subjectLink.Text())
	post.Subject = &subject
	if tid, ok := htmlutil.QueryInt(subjectLink.AttrOr("href", ""), "topic"); ok {
		post.TID = &tid
	}

	if date := parsePostDate(wrapper); date != "" {
		post.Date = &date
	}
	if edited := htmlutil.CleanText(wrapper.Find("span.modified").First().Text()); edited != "" {
		post.Edited = &edited
	}

	content, err := wrapper.Find("div.post div.inner").First().Html()
	if err != nil {
		return post, err
	}
	trimmed := strings.TrimSpace(content)
	post.Content = &trimmed

	if src, ok := wrapper.Find("div.messageicon img").First().Attr("src"); ok {
		icon := iconStem(src)
		post.Icon = &icon
	}

	post.User = parsePoster(wrapper.Find("div.poster").First())
	return post, nil
}

// iconStem reduces an icon image url to its bare name, e.g.
// ".../images/post/thumbup.gif" -> "thumbup".
func iconStem(src string) string {
	base := path.Base(src)
	return strings.TrimSuffix(base, path.Ext(base))
}

func parsePostDate(wrapper *goquery.Selection) string {
	date := htmlutil.CleanText(wrapper.Find("div.keyinfo div.smalltext").First().Text())
	date = strings.TrimPrefix(date, "«")
	date = strings.TrimSuffix(date, "»")
	date = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(date), "on:"))
	return date
}

func parsePoster(poster *goquery.Selection) *UserInfo {
	if poster.Length() == 0 {
		return nil
	}
	info := &UserInfo{}

	profileLink := poster.Find("h4 a").First()
	if name := htmlutil.CleanText(profileLink.Text()); name != "" {
		info.Name = &name
	}
	if uid, ok := htmlutil.QueryInt(profileLink.AttrOr("href", ""), "u"); ok {
		info.UID = &uid
	}
	if avatar, ok := poster.Find("img.avatar").First().Attr("src"); ok {
		info.Avatar = &avatar
	}
	if group := htmlutil.CleanText(poster.Find("li.membergroup").First().Text()); group != "" {
		info.Group = &group
	}
	if posts, ok := htmlutil.FirstInt(poster.Find("li.postcount").First().Text()); ok {
		info.Posts = &posts
	}
	return info
}
