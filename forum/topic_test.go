package forum

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicUpdateGet(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/index.php", r.URL.Path)
		require.Equal(t, "topic=42.0", r.URL.RawQuery)
		w.Write([]byte(topicPageHTML))
	}))

	topic, err := NewTopic(sess).Update(context.Background(), TopicOptions{
		Fields: TopicFields{TID: Int(42)},
	})
	require.NoError(t, err)

	require.NotNil(t, topic.TopicName)
	require.Equal(t, "My Topic", *topic.TopicName)
	require.NotNil(t, topic.Pages)
	require.Equal(t, 3, *topic.Pages)
	require.Equal(t, 3, topic.GetSize())
}

func TestTopicGetPage(t *testing.T) {
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "topic=42.15", r.URL.RawQuery)
		w.Write([]byte(topicPageHTML))
	}))

	// the fixture reports page 1, so asking for page 2 must warn but
	// still hand back the server's data
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	topic := NewTopic(sess)
	topic.TID = Int(42)

	messages, err := topic.GetPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Contains(t, logs.String(), "different page")

	// opportunistic refresh
	require.NotNil(t, topic.TopicName)
	require.Equal(t, "My Topic", *topic.TopicName)
	require.Equal(t, 3, topic.GetSize())

	first := messages[0]
	require.NotNil(t, first.MID)
	require.Equal(t, 9001, *first.MID)
	require.NotNil(t, first.User)
	require.Equal(t, "alice", *first.User.Name)
	require.NotNil(t, first.Icon)
	require.Equal(t, IconStandard, *first.Icon)
}

func TestTopicGetPageRequiresTid(t *testing.T) {
	topic := NewTopic(nil)
	_, err := topic.GetPage(context.Background(), 1)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.ElementsMatch(t, []Field{FieldSession, FieldTID}, incomplete.Missing)
}

func TestTopicEachPage(t *testing.T) {
	var queries []string
	sess := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Write([]byte(topicPageHTML))
	}))

	topic := NewTopic(sess)
	topic.TID = Int(42)

	var visited []int
	err := topic.EachPage(context.Background(), func(page int, messages []Message) error {
		visited = append(visited, page)
		require.Len(t, messages, 2)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 3}, visited)
	// one fetch for the page count, then one per page
	require.Equal(t, []string{
		"topic=42.0",
		"topic=42.0",
		"topic=42.15",
		"topic=42.30",
	}, queries)
}
