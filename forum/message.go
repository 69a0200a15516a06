package forum

import (
	"context"
	"strconv"
	"strings"

	"tbgclient/api"
	"tbgclient/parse"
	"tbgclient/session"

	"go.opentelemetry.io/otel/codes"
)

// Message is the smallest unit of the forum: one post inside a topic,
// identified by the (tid, mid) pair, carrying its markup plus metadata
// about who posted it and when.
type Message struct {
	sess *session.Session

	TID     *int
	MID     *int
	Subject *string
	Date    *string
	Edited  *string
	Content *string
	User    *User
	Icon    *PostIcon
}

func NewMessage(sess *session.Session) *Message {
	return &Message{sess: sess}
}

// MessageFromRaw builds a Message from a raw parsed record. A raw poster
// record always becomes a *User and a raw icon string always becomes a
// PostIcon; reinitialization after a server round trip goes through here
// too, so the normalization holds however the fields were produced.
func MessageFromRaw(sess *session.Session, raw parse.Post) (*Message, error) {
	m := &Message{
		sess:    sess,
		TID:     raw.TID,
		MID:     raw.MID,
		Subject: raw.Subject,
		Date:    raw.Date,
		Edited:  raw.Edited,
		Content: raw.Content,
	}
	if raw.User != nil {
		m.User = UserFromRaw(sess, *raw.User)
	}
	if raw.Icon != nil {
		icon, err := ParsePostIcon(*raw.Icon)
		if err != nil {
			return nil, err
		}
		m.Icon = &icon
	}
	return m, nil
}

// SetSession rebinds the message to a session.
func (m *Message) SetSession(sess *session.Session) { m.sess = sess }

// MessageFields is the declared-field override bundle for Message
// operations. Nil entries leave the current value alone.
type MessageFields struct {
	TID     *int
	MID     *int
	Subject *string
	Date    *string
	Edited  *string
	Content *string
	User    *User
	Icon    *PostIcon
}

func (m *Message) applyFields(f MessageFields) {
	if f.TID != nil {
		m.TID = f.TID
	}
	if f.MID != nil {
		m.MID = f.MID
	}
	if f.Subject != nil {
		m.Subject = f.Subject
	}
	if f.Date != nil {
		m.Date = f.Date
	}
	if f.Edited != nil {
		m.Edited = f.Edited
	}
	if f.Content != nil {
		m.Content = f.Content
	}
	if f.User != nil {
		m.User = f.User
	}
	if f.Icon != nil {
		m.Icon = f.Icon
	}
}

// MessageOptions selects the method and carries field overrides plus ad
// hoc parameters for one Message operation.
type MessageOptions struct {
	Method Method
	Fields MessageFields
	Params Params
}

var messageDispatch = dispatchTable[Message]{
	defaultUpdate: MethodGet,
	defaultSubmit: MethodPost,
	update: map[Method]handlerFunc[Message]{
		MethodGet:       (*Message).updateGet,
		MethodQuoteFast: (*Message).updateQuoteFast,
	},
	submit: map[Method]handlerFunc[Message]{
		MethodPost: (*Message).submitPost,
		MethodEdit: (*Message).submitEdit,
	},
}

// Update applies the field overrides and dispatches the selected update
// method (MethodGet when unset).
func (m *Message) Update(ctx context.Context, opts MessageOptions) (*Message, error) {
	m.applyFields(opts.Fields)
	if err := messageDispatch.runUpdate(ctx, m, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return m, nil
}

// Submit applies the field overrides and dispatches the selected submit
// method (MethodPost when unset).
func (m *Message) Submit(ctx context.Context, opts MessageOptions) (*Message, error) {
	m.applyFields(opts.Fields)
	if err := messageDispatch.runSubmit(ctx, m, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) iconName() string {
	if m.Icon == nil {
		return IconStandard.String()
	}
	return m.Icon.String()
}

// submitPost posts the message to its topic. The forum does not echo the
// assigned message id back, so local fields are left alone; callers that
// need the mid re-fetch the topic.
func (m *Message) submitPost(ctx context.Context, _ Params) error {
	ctx, span := tracer.Start(ctx, "message:submitPost")
	defer span.End()

	if err := checkFields(m, FieldSession, FieldTID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := api.PostMessage(ctx, m.sess, *m.TID, strVal(m.Subject), strVal(m.Content), m.iconName())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to post message")
		return err
	}
	if err := parse.CheckErrors(res.String(), res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forum rejected post")
		return err
	}
	return nil
}

// updateGet fetches the page containing the message and reinitializes the
// whole instance from the record whose mid matches.
func (m *Message) updateGet(ctx context.Context, _ Params) error {
	ctx, span := tracer.Start(ctx, "message:updateGet")
	defer span.End()

	if err := checkFields(m, FieldSession, FieldMID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := api.GetMessagePage(ctx, m.sess, *m.MID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch message page")
		return err
	}
	if err := parse.CheckErrors(res.String(), res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forum rejected fetch")
		return err
	}

	parsed, err := parse.ParsePage(res.String(), parse.TopicContent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse message page")
		return err
	}

	for _, raw := range parsed.Contents {
		if raw.MID == nil || *raw.MID != *m.MID {
			continue
		}
		fresh, err := MessageFromRaw(m.sess, raw)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to rebuild message")
			return err
		}
		*m = *fresh
		return nil
	}

	reqErr := &parse.RequestError{
		Reason:   "requested post does not exist in page",
		Response: res,
	}
	span.SetStatus(codes.Error, reqErr.Reason)
	return reqErr
}

// submitEdit overwrites the message on the server, recording the edit
// reason from Params.
func (m *Message) submitEdit(ctx context.Context, p Params) error {
	ctx, span := tracer.Start(ctx, "message:submitEdit")
	defer span.End()

	if err := checkFields(m, FieldSession, FieldMID, FieldTID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := api.EditMessage(ctx, m.sess, *m.MID, *m.TID, strVal(m.Subject), strVal(m.Content), m.iconName(), p.Reason)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit edit")
		return err
	}
	if err := parse.CheckErrors(res.String(), res); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forum rejected edit")
		return err
	}
	return nil
}

// updateQuoteFast fetches the message's raw markup through the quotefast
// action and reinitializes the instance from the compact payload. The
// modify flag lets it read posts in locked topics.
func (m *Message) updateQuoteFast(ctx context.Context, _ Params) error {
	ctx, span := tracer.Start(ctx, "message:updateQuoteFast")
	defer span.End()

	if err := checkFields(m, FieldSession, FieldMID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := api.DoAction(ctx, m.sess, "quotefast", []api.Param{
		{Key: "quote", Value: strconv.Itoa(*m.MID)},
		{Key: "xml"},
		{Key: "modify"},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch quotefast payload")
		return err
	}

	// an html body here means the forum answered with an error page
	// instead of the expected xml
	if strings.Contains(res.String(), "<html") {
		if err := parse.CheckErrors(res.String(), res); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "forum rejected quotefast")
			return err
		}
	}

	raw, err := parse.ParseQuoteFast(res.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse quotefast payload")
		return err
	}
	fresh, err := MessageFromRaw(m.sess, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to rebuild message")
		return err
	}
	*m = *fresh
	return nil
}

func (m *Message) hasField(f Field) bool {
	switch f {
	case FieldSession:
		return m.sess != nil
	case FieldTID:
		return m.TID != nil
	case FieldMID:
		return m.MID != nil
	case FieldSubject:
		return m.Subject != nil
	case FieldDate:
		return m.Date != nil
	case FieldEdited:
		return m.Edited != nil
	case FieldContent:
		return m.Content != nil
	case FieldUser:
		return m.User != nil
	case FieldIcon:
		return m.Icon != nil
	}
	return false
}
