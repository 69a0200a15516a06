package forum

// Field identifies one declared entity field. Operations name the fields
// they cannot run without and the validator reports every absent one at
// once, before a request is made.
type Field string

const (
	FieldSession Field = "session"

	FieldUID       Field = "uid"
	FieldName      Field = "name"
	FieldAvatar    Field = "avatar"
	FieldGroup     Field = "group"
	FieldPosts     Field = "posts"
	FieldSignature Field = "signature"
	FieldEmail     Field = "email"
	FieldBlurb     Field = "blurb"
	FieldLocation  Field = "location"
	FieldRealName  Field = "real_name"
	FieldSocial    Field = "social"
	FieldWebsite   Field = "website"
	FieldGender    Field = "gender"

	FieldTID       Field = "tid"
	FieldTopicName Field = "topic_name"
	FieldPages     Field = "pages"

	FieldMID     Field = "mid"
	FieldSubject Field = "subject"
	FieldDate    Field = "date"
	FieldEdited  Field = "edited"
	FieldContent Field = "content"
	FieldUser    Field = "user"
	FieldIcon    Field = "icon"
)

type fieldChecker interface {
	hasField(Field) bool
}

func checkFields(e fieldChecker, required ...Field) error {
	var missing []Field
	for _, f := range required {
		if !e.hasField(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}
