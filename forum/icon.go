package forum

import "fmt"

// PostIcon is one of the forum's stock message icons. The value is the
// icon's name on the wire (the image file stem).
type PostIcon string

const (
	IconStandard    PostIcon = "xx"
	IconThumbUp     PostIcon = "thumbup"
	IconThumbDown   PostIcon = "thumbdown"
	IconExclamation PostIcon = "exclamation"
	IconQuestion    PostIcon = "question"
	IconLamp        PostIcon = "lamp"
	IconSmiley      PostIcon = "smiley"
	IconAngry       PostIcon = "angry"
	IconCheesy      PostIcon = "cheesy"
	IconGrin        PostIcon = "grin"
	IconSad         PostIcon = "sad"
	IconWink        PostIcon = "wink"
)

var postIcons = map[PostIcon]bool{
	IconStandard:    true,
	IconThumbUp:     true,
	IconThumbDown:   true,
	IconExclamation: true,
	IconQuestion:    true,
	IconLamp:        true,
	IconSmiley:      true,
	IconAngry:       true,
	IconCheesy:      true,
	IconGrin:        true,
	IconSad:         true,
	IconWink:        true,
}

// ParsePostIcon normalizes a raw icon string into a PostIcon, rejecting
// names the forum does not ship.
func ParsePostIcon(s string) (PostIcon, error) {
	icon := PostIcon(s)
	if !postIcons[icon] {
		return "", fmt.Errorf("unknown post icon %q", s)
	}
	return icon, nil
}

func (i PostIcon) String() string { return string(i) }
