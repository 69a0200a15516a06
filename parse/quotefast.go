package parse

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The quotefast action answers with a tiny XML document wrapping the
// message as a [quote] block rather than a full page.
type quotefastPayload struct {
	XMLName xml.Name `xml:"smf"`
	Quote   string   `xml:"quote"`
}

var quoteHeaderRegex = regexp.MustCompile(
	`(?s)^\[quote author=(.+?) link=topic=(\d+)\.msg(\d+)\S* date=(\d+)\](.*)\[/quote\]\s*$`,
)

// ParseQuoteFast decodes a quotefast response into a partial Post: topic
// and message ids, the raw markup of the message and the author's name.
func ParseQuoteFast(text string) (Post, error) {
	var payload quotefastPayload
	err := xml.Unmarshal([]byte(text), &payload)
	if err != nil {
		return Post{}, fmt.Errorf("quotefast response is not valid xml: %w", err)
	}

	groups := quoteHeaderRegex.FindStringSubmatch(strings.TrimSpace(payload.Quote))
	if groups == nil {
		return Post{}, fmt.Errorf("quotefast response carries no quote block")
	}

	author := groups[1]
	tid, err := strconv.Atoi(groups[2])
	if err != nil {
		return Post{}, err
	}
	mid, err := strconv.Atoi(groups[3])
	if err != nil {
		return Post{}, err
	}
	date := groups[4]
	content := strings.TrimSpace(groups[5])

	return Post{
		TID:     &tid,
		MID:     &mid,
		Date:    &date,
		Content: &content,
		User:    &UserInfo{Name: &author},
	}, nil
}
