package forum

import (
	"context"

	"tbgclient/parse"
	"tbgclient/session"
)

// User represents a forum user. The variant declares no update or submit
// methods of its own; it mostly appears embedded in messages.
type User struct {
	sess *session.Session

	UID       *int
	Name      *string
	Avatar    *string
	Group     *string
	Posts     *int
	Signature *string
	Email     *string
	Blurb     *string
	Location  *string
	RealName  *string
	Social    map[string]string
	Website   *string
	Gender    *string
}

func NewUser(sess *session.Session) *User {
	return &User{sess: sess}
}

// UserFromRaw builds a User from a raw poster record.
func UserFromRaw(sess *session.Session, raw parse.UserInfo) *User {
	return &User{
		sess:   sess,
		UID:    raw.UID,
		Name:   raw.Name,
		Avatar: raw.Avatar,
		Group:  raw.Group,
		Posts:  raw.Posts,
	}
}

// SetSession rebinds the user to a session.
func (u *User) SetSession(sess *session.Session) { u.sess = sess }

// UserFields is the declared-field override bundle for User operations.
// Nil entries leave the current value alone.
type UserFields struct {
	UID       *int
	Name      *string
	Avatar    *string
	Group     *string
	Posts     *int
	Signature *string
	Email     *string
	Blurb     *string
	Location  *string
	RealName  *string
	Social    map[string]string
	Website   *string
	Gender    *string
}

func (u *User) applyFields(f UserFields) {
	if f.UID != nil {
		u.UID = f.UID
	}
	if f.Name != nil {
		u.Name = f.Name
	}
	if f.Avatar != nil {
		u.Avatar = f.Avatar
	}
	if f.Group != nil {
		u.Group = f.Group
	}
	if f.Posts != nil {
		u.Posts = f.Posts
	}
	if f.Signature != nil {
		u.Signature = f.Signature
	}
	if f.Email != nil {
		u.Email = f.Email
	}
	if f.Blurb != nil {
		u.Blurb = f.Blurb
	}
	if f.Location != nil {
		u.Location = f.Location
	}
	if f.RealName != nil {
		u.RealName = f.RealName
	}
	if f.Social != nil {
		u.Social = f.Social
	}
	if f.Website != nil {
		u.Website = f.Website
	}
	if f.Gender != nil {
		u.Gender = f.Gender
	}
}

// UserOptions selects the method and carries field overrides for one
// User operation.
type UserOptions struct {
	Method Method
	Fields UserFields
	Params Params
}

var userDispatch = dispatchTable[User]{
	defaultUpdate: MethodGet,
	defaultSubmit: MethodPost,
	update:        map[Method]handlerFunc[User]{},
	submit:        map[Method]handlerFunc[User]{},
}

// Update applies the field overrides and dispatches the selected update
// method. Users declare none, so this always reports NotImplementedError;
// the overrides still land on the instance first.
func (u *User) Update(ctx context.Context, opts UserOptions) (*User, error) {
	u.applyFields(opts.Fields)
	if err := userDispatch.runUpdate(ctx, u, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return u, nil
}

// Submit is the submission counterpart of Update.
func (u *User) Submit(ctx context.Context, opts UserOptions) (*User, error) {
	u.applyFields(opts.Fields)
	if err := userDispatch.runSubmit(ctx, u, opts.Method, opts.Params); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) hasField(f Field) bool {
	switch f {
	case FieldSession:
		return u.sess != nil
	case FieldUID:
		return u.UID != nil
	case FieldName:
		return u.Name != nil
	case FieldAvatar:
		return u.Avatar != nil
	case FieldGroup:
		return u.Group != nil
	case FieldPosts:
		return u.Posts != nil
	case FieldSignature:
		return u.Signature != nil
	case FieldEmail:
		return u.Email != nil
	case FieldBlurb:
		return u.Blurb != nil
	case FieldLocation:
		return u.Location != nil
	case FieldRealName:
		return u.RealName != nil
	case FieldSocial:
		return u.Social != nil
	case FieldWebsite:
		return u.Website != nil
	case FieldGender:
		return u.Gender != nil
	}
	return false
}
