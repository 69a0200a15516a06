// Package api builds the wire-level requests for each forum action. Every
// function makes exactly one request through the session's client and
// returns the raw response; interpreting the body is the parse package's
// job.
package api

import (
	"context"
	"fmt"
	"strings"

	"tbgclient/session"

	"github.com/go-resty/resty/v2"
)

// TopicPerPage is the number of messages the forum lays out per topic
// page. Offsets in topic urls are message counts, not page numbers.
const TopicPerPage = 15

// GetTopicPage fetches a topic page at the given message offset
// (index.php?topic=<tid>.<offset>).
func GetTopicPage(ctx context.Context, s *session.Session, tid, offset int) (*resty.Response, error) {
	return s.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/index.php?topic=%d.%d", tid, offset))
}

// GetMessagePage fetches the topic page containing a message. The forum
// resolves the bare msg parameter to the right topic and offset itself.
func GetMessagePage(ctx context.Context, s *session.Session, mid int) (*resty.Response, error) {
	return s.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/index.php?msg=%d", mid))
}

// PostMessage submits a new message to a topic through the post2 action.
func PostMessage(ctx context.Context, s *session.Session, tid int, subject, content, icon string) (*resty.Response, error) {
	return s.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"topic":   fmt.Sprintf("%d", tid),
			"subject": subject,
			"message": content,
			"icon":    icon,
			"post":    "Post",
		}).
		Post("/index.php?action=post2")
}

// EditMessage overwrites an existing message through the post2 action.
func EditMessage(ctx context.Context, s *session.Session, mid, tid int, subject, content, icon, reason string) (*resty.Response, error) {
	return s.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"topic":         fmt.Sprintf("%d", tid),
			"subject":       subject,
			"message":       content,
			"icon":          icon,
			"modify_reason": reason,
			"post":          "Save",
		}).
		Post(fmt.Sprintf("/index.php?action=post2;msg=%d", mid))
}

// Param is one action parameter. A Param with an empty Value renders as a
// bare key, which some actions use as flags (e.g. "xml").
type Param struct {
	Key   string
	Value string
}

// DoAction issues an arbitrary forum action. The forum separates action
// parameters with semicolons and expects them unescaped, so the query
// string is assembled by hand rather than through url.Values.
func DoAction(ctx context.Context, s *session.Session, action string, params []Param) (*resty.Response, error) {
	parts := []string{fmt.Sprintf("action=%s", action)}
	for _, p := range params {
		if p.Value == "" {
			parts = append(parts, p.Key)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.Key, p.Value))
	}
	return s.Http.R().
		SetContext(ctx).
		Get("/index.php?" + strings.Join(parts, ";"))
}
