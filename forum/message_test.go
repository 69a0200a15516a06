package forum

import (
	"context"
	"net/http"
	"testing"

	"tbgclient/parse"

	"github.com/stretchr/testify/require"
)

func TestMessageFromRawNormalization(t *testing.T) {
	raw := parse.Post{
		TID:     Int(42),
		MID:     Int(9001),
		Subject: String("My Topic"),
		Content: String("Opening post body"),
		Icon:    String("xx"),
		User: &parse.UserInfo{
			UID:  Int(7),
			Name: String("alice"),
		},
	}

	first, err := MessageFromRaw(nil, raw)
	require.NoError(t, err)
	second, err := MessageFromRaw(nil, raw)
	require.NoError(t, err)

	// same input, structurally equal normalized output
	require.Equal(t, first, second)

	require.NotNil(t, first.User)
	require.Equal(t, 7, *first.User.UID)
	require.Equal(t, "alice", *first.User.Name)
	require.NotNil(t, first.Icon)
	require.Equal(t, IconStandard, *first.Icon)
}

func TestMessageFromRawRejectsUnknownIcon(t *testing.T) {
	_, err := MessageFromRaw(nil, parse.Post{Icon: String("bogus")})
	require.Error(t, err)
}

func TestMessageUpdateGet(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "msg=9002", r.URL.RawQuery)
		w.Write([]byte(topicPageHTML))
	}))

	m, err := NewMessage(sess).Update(context.Background(), MessageOptions{
		Fields: MessageFields{MID: Int(9002)},
	})
	require.NoError(t, err)

	require.Equal(t, 42, *m.TID)
	require.Equal(t, 9002, *m.MID)
	require.Equal(t, "Re: My Topic", *m.Subject)
	require.Equal(t, "First reply body", *m.Content)
	require.Nil(t, m.Edited)
	require.NotNil(t, m.User)
	require.Equal(t, "bob", *m.User.Name)
	require.Equal(t, 12, *m.User.UID)
	require.Equal(t, IconThumbUp, *m.Icon)
}

func TestMessageUpdateGetMissingFromPage(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(topicPageHTML))
	}))

	_, err := NewMessage(sess).Update(context.Background(), MessageOptions{
		Fields: MessageFields{MID: Int(555)},
	})

	var reqErr *parse.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.NotNil(t, reqErr.Response)
}

func TestMessageUpdateGetForumError(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorPageHTML))
	}))

	_, err := NewMessage(sess).Update(context.Background(), MessageOptions{
		Fields: MessageFields{MID: Int(9001)},
	})

	var reqErr *parse.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Contains(t, reqErr.Reason, "missing or off limits")
}

func TestMessageSubmitPost(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "action=post2", r.URL.RawQuery)
		require.Equal(t, "42", r.PostFormValue("topic"))
		require.Equal(t, "hello", r.PostFormValue("subject"))
		require.Equal(t, "first!", r.PostFormValue("message"))
		require.Equal(t, "smiley", r.PostFormValue("icon"))
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	icon := IconSmiley
	m := NewMessage(sess)
	result, err := m.Submit(context.Background(), MessageOptions{
		Fields: MessageFields{
			TID:     Int(42),
			Subject: String("hello"),
			Content: String("first!"),
			Icon:    &icon,
		},
	})
	require.NoError(t, err)

	// posting does not echo the assigned message id back
	require.Same(t, m, result)
	require.Nil(t, m.MID)
}

func TestMessageSubmitPostRejected(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorPageHTML))
	}))

	_, err := NewMessage(sess).Submit(context.Background(), MessageOptions{
		Fields: MessageFields{TID: Int(42), Content: String("hi")},
	})

	var reqErr *parse.RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestMessageSubmitEdit(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "action=post2;msg=9001", r.URL.RawQuery)
		require.Equal(t, "42", r.PostFormValue("topic"))
		require.Equal(t, "fixed a typo", r.PostFormValue("modify_reason"))
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	_, err := NewMessage(sess).Submit(context.Background(), MessageOptions{
		Method: MethodEdit,
		Fields: MessageFields{
			TID:     Int(42),
			MID:     Int(9001),
			Subject: String("hello"),
			Content: String("first! (edited)"),
		},
		Params: Params{Reason: "fixed a typo"},
	})
	require.NoError(t, err)
}

func TestMessageUpdateQuoteFast(t *testing.T) {
	const payload = `<?xml version="1.0" encoding="UTF-8"?>
<smf>
	<quote>[quote author=alice link=topic=42.msg9001#msg9001 date=1714644660]Opening post body[/quote]</quote>
</smf>`

	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "action=quotefast;quote=9001;xml;modify", r.URL.RawQuery)
		w.Write([]byte(payload))
	}))

	m := NewMessage(sess)
	m.Subject = String("stale subject")

	_, err := m.Update(context.Background(), MessageOptions{
		Method: MethodQuoteFast,
		Fields: MessageFields{MID: Int(9001)},
	})
	require.NoError(t, err)

	// the instance is rebuilt wholesale from the compact payload
	require.Equal(t, 42, *m.TID)
	require.Equal(t, 9001, *m.MID)
	require.Equal(t, "Opening post body", *m.Content)
	require.Equal(t, "1714644660", *m.Date)
	require.NotNil(t, m.User)
	require.Equal(t, "alice", *m.User.Name)
	require.Nil(t, m.Subject)
}

func TestMessageUpdateQuoteFastErrorPage(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorPageHTML))
	}))

	_, err := NewMessage(sess).Update(context.Background(), MessageOptions{
		Method: MethodQuoteFast,
		Fields: MessageFields{MID: Int(9001)},
	})

	var reqErr *parse.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Contains(t, reqErr.Reason, "missing or off limits")
}
