package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tbgclient/session"

	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method   string
	rawQuery string
	form     map[string]string
}

func newRecordingSession(t *testing.T) (*session.Session, *recordedRequest) {
	t.Helper()
	last := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.method = r.Method
		last.rawQuery = r.URL.RawQuery
		last.form = map[string]string{}
		for _, key := range []string{"topic", "subject", "message", "icon", "modify_reason", "post"} {
			if v := r.PostFormValue(key); v != "" {
				last.form[key] = v
			}
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	t.Cleanup(server.Close)

	sess, err := session.New(session.Options{BaseURL: server.URL})
	require.NoError(t, err)
	return sess, last
}

func TestGetTopicPage(t *testing.T) {
	sess, last := newRecordingSession(t)

	_, err := GetTopicPage(context.Background(), sess, 42, 30)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, last.method)
	require.Equal(t, "topic=42.30", last.rawQuery)
}

func TestGetMessagePage(t *testing.T) {
	sess, last := newRecordingSession(t)

	_, err := GetMessagePage(context.Background(), sess, 9001)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, last.method)
	require.Equal(t, "msg=9001", last.rawQuery)
}

func TestPostMessage(t *testing.T) {
	sess, last := newRecordingSession(t)

	_, err := PostMessage(context.Background(), sess, 42, "hello", "first!", "xx")
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, last.method)
	require.Equal(t, "action=post2", last.rawQuery)
	require.Equal(t, map[string]string{
		"topic":   "42",
		"subject": "hello",
		"message": "first!",
		"icon":    "xx",
		"post":    "Post",
	}, last.form)
}

func TestEditMessage(t *testing.T) {
	sess, last := newRecordingSession(t)

	_, err := EditMessage(context.Background(), sess, 9001, 42, "hello", "first! (edited)", "xx", "typo")
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, last.method)
	require.Equal(t, "action=post2;msg=9001", last.rawQuery)
	require.Equal(t, "typo", last.form["modify_reason"])
	require.Equal(t, "Save", last.form["post"])
}

func TestDoActionRendersBareParams(t *testing.T) {
	sess, last := newRecordingSession(t)

	_, err := DoAction(context.Background(), sess, "quotefast", []Param{
		{Key: "quote", Value: "9001"},
		{Key: "xml"},
		{Key: "modify"},
	})
	require.NoError(t, err)
	require.Equal(t, "action=quotefast;quote=9001;xml;modify", last.rawQuery)
}
