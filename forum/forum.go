// Package forum models the parts of the forum a client manipulates: users,
// topics, paginated pages and individual messages. Entities carry optional
// fields (nil = absent) plus a borrowed session, and expose their network
// operations through a uniform update/submit dispatch where a Method picks
// the retrieval or submission strategy.
package forum

import (
	"context"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tbgclient/forum")

// Method names one retrieval or submission strategy of an entity.
type Method string

const (
	// MethodGet fetches the entity's canonical page.
	MethodGet Method = "get"
	// MethodQuoteFast fetches a message's raw markup through the
	// quotefast action.
	MethodQuoteFast Method = "quotefast"
	// MethodPost submits a new message.
	MethodPost Method = "post"
	// MethodEdit overwrites an existing message.
	MethodEdit Method = "edit"
)

// Params carries the ad hoc parameters a handler may consume beyond the
// entity's own fields. It is a closed record: parameters no handler knows
// about cannot be expressed, let alone silently dropped.
type Params struct {
	// Reason is the edit reason recorded with MethodEdit submissions.
	Reason string
}

type handlerFunc[E any] func(e *E, ctx context.Context, p Params) error

// dispatchTable binds each entity variant's methods to handlers at
// definition time. Looking up a method that isn't in the table is a
// programmer error, reported before any request is attempted.
type dispatchTable[E any] struct {
	defaultUpdate Method
	defaultSubmit Method
	update        map[Method]handlerFunc[E]
	submit        map[Method]handlerFunc[E]
}

func (d dispatchTable[E]) runUpdate(ctx context.Context, e *E, method Method, p Params) error {
	if method == "" {
		method = d.defaultUpdate
	}
	h, ok := d.update[method]
	if !ok {
		return &NotImplementedError{Op: "update", Method: method}
	}
	return h(e, ctx, p)
}

func (d dispatchTable[E]) runSubmit(ctx context.Context, e *E, method Method, p Params) error {
	if method == "" {
		method = d.defaultSubmit
	}
	h, ok := d.submit[method]
	if !ok {
		return &NotImplementedError{Op: "submit", Method: method}
	}
	return h(e, ctx, p)
}

// Int returns a pointer to v, for filling optional entity fields.
func Int(v int) *int { return &v }

// String returns a pointer to v, for filling optional entity fields.
func String(v string) *string { return &v }

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
