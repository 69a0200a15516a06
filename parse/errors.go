package parse

import (
	"fmt"
	"strings"

	"tbgclient/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// RequestError reports an error the forum signalled inside an otherwise
// successful HTTP exchange. The originating response is kept for
// diagnostics.
type RequestError struct {
	Reason   string
	Response *resty.Response
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("forum request failed: %s", e.Reason)
}

// CheckErrors inspects a response body for the forum's error box. It
// returns a *RequestError carrying the response when one is found,
// otherwise nil.
func CheckErrors(text string, res *resty.Response) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return err
	}

	box := doc.Find("#fatal_error, .errorbox").First()
	if box.Length() == 0 {
		return nil
	}
	reason := htmlutil.CleanText(box.Text())
	if reason == "" {
		reason = "unspecified forum error"
	}
	return &RequestError{Reason: reason, Response: res}
}
