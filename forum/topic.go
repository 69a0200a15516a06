package forum

import (
	"context"
	"log/slog"

	"tbgclient/api"
	"tbgclient/parse"
	"tbgclient/session"

	"go.opentelemetry.io/otel/codes"
)

// Topic is one discussion thread. Beyond its identifying fields it tracks
// its own pagination state, refreshed opportunistically by every page
// fetch.
type Topic struct {
	sess *session.Session

	TID       *int
	TopicName *string
	Pages     *int

	currentPage int
}

// CurrentPage reports the page the most recent fetch landed on, 0 before
// any fetch.
func (t *Topic) CurrentPage() int { return t.currentPage }

func NewTopic(sess *session.Session) *Topic {
	return &Topic{sess: sess}
}

// SetSession rebinds the topic to a session.
func (t *Topic) SetSession(sess *session.Session) { t.sess = sess }

// TopicFields is the declared-field override bundle for Topic operations.
// Nil entries leave the current value alone.
type TopicFields struct {
	TID       *int
	TopicName *string
	Pages     *int
}

func (t *Topic) applyFields(f TopicFields) {
	if f.TID != nil {
		t.TID = f.TID
	}
	if f.TopicName != nil {
		t.TopicName = f.TopicName
	}
	if f.Pages != nil {
		t.Pages = f.Pages
	}
}

// TopicOptions selects the method and carries field overrides for one
// Topic operation.
type TopicOptions struct {
	Method Method
	Fields TopicFields
	Params Params
}

var topicDispatch = dispatchTable[Topic]{
	defaultUpdate: MethodGet,
	defaultSubmit: MethodPost,
	update: map[Method]handlerFunc[Topic]{
		MethodGet: (*Topic).updateGet,
	},
	submit: map[Method]handlerFunc[Topic]{},
}

// Update applies the field overrides and dispatches the selected update
// method (MethodGet when unset).
func (t *Topic) Update(ctx context.Context, opts TopicOptions) (*Topic, error) {
	t.applyFields(opts.Fields)
	if err := topicDispatch.runUpdate(ctx, t, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return t, nil
}

// Submit is the submission counterpart of Update. Topics declare no
// submit methods.
func (t *Topic) Submit(ctx context.Context, opts TopicOptions) (*Topic, error) {
	t.applyFields(opts.Fields)
	if err := topicDispatch.runSubmit(ctx, t, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return t, nil
}

// updateGet fetches the topic's first page and records the topic name
// (the last entry of the location hierarchy) and the page count.
func (t *Topic) updateGet(ctx context.Context, _ Params) error {
	ctx, span := tracer.Start(ctx, "topic:updateGet")
	defer span.End()

	if err := checkFields(t, FieldSession, FieldTID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := api.GetTopicPage(ctx, t.sess, *t.TID, 0)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch topic page")
		return err
	}

	parsed, err := parse.ParsePage(res.String(), parse.TopicContent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse topic page")
		return err
	}
	if len(parsed.Hierarchy) == 0 {
		err := &parse.RequestError{
			Reason:   "topic page carries no location hierarchy",
			Response: res,
		}
		span.SetStatus(codes.Error, err.Reason)
		return err
	}

	last := parsed.Hierarchy[len(parsed.Hierarchy)-1]
	t.TopicName = &last.Name
	t.Pages = &parsed.TotalPages
	t.currentPage = parsed.CurrentPage
	return nil
}

// GetPage fetches one page of the topic's messages. Page numbers are
// 1-based; values below 1 are clamped to the first page. When the server
// answers with a different page than requested, the call warns and keeps
// the server's data. Name and page count are refreshed along the way in
// case Update hasn't run yet.
func (t *Topic) GetPage(ctx context.Context, page int) ([]Message, error) {
	ctx, span := tracer.Start(ctx, "topic:GetPage")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if err := checkFields(t, FieldSession, FieldTID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res, err := api.GetTopicPage(ctx, t.sess, *t.TID, (page-1)*api.TopicPerPage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch topic page")
		return nil, err
	}

	parsed, err := parse.ParsePage(res.String(), parse.TopicContent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse topic page")
		return nil, err
	}

	if parsed.CurrentPage != page {
		slog.WarnContext(ctx, "server answered with a different page",
			"tid", *t.TID,
			"requested", page,
			"got", parsed.CurrentPage,
		)
	}

	if len(parsed.Hierarchy) > 0 {
		last := parsed.Hierarchy[len(parsed.Hierarchy)-1]
		t.TopicName = &last.Name
	}
	t.Pages = &parsed.TotalPages
	t.currentPage = parsed.CurrentPage

	typed, err := NewPage(parsed, func(raw parse.Post) (Message, error) {
		m, err := MessageFromRaw(t.sess, raw)
		if err != nil {
			return Message{}, err
		}
		return *m, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to cast page contents")
		return nil, err
	}
	return typed.Contents, nil
}

// GetSize reports the known page count, the sizing hook page iteration
// runs on. Zero until the topic has been updated or a page fetched.
func (t *Topic) GetSize() int {
	if t.Pages == nil {
		return 0
	}
	return *t.Pages
}

// EachPage walks the topic page by page, handing each message list to fn.
// The page count is fetched first when not yet known. Iteration stops at
// the first error, which is returned as-is.
func (t *Topic) EachPage(ctx context.Context, fn func(page int, messages []Message) error) error {
	if t.Pages == nil {
		if _, err := t.Update(ctx, TopicOptions{}); err != nil {
			return err
		}
	}
	for page := 1; page <= t.GetSize(); page++ {
		messages, err := t.GetPage(ctx, page)
		if err != nil {
			return err
		}
		if err := fn(page, messages); err != nil {
			return err
		}
	}
	return nil
}

func (t *Topic) hasField(f Field) bool {
	switch f {
	case FieldSession:
		return t.sess != nil
	case FieldTID:
		return t.TID != nil
	case FieldTopicName:
		return t.TopicName != nil
	case FieldPages:
		return t.Pages != nil
	}
	return false
}
