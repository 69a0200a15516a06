// Package session holds the authenticated context every forum entity
// shares. A Session owns the HTTP client and cookie jar; entities only
// borrow a reference to it.
package session

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"tbgclient/lib/telemetry"
	"tbgclient/parse"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("tbgclient/session")

var LoginFailed = fmt.Errorf("Failed to login to your account.")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Session struct {
	BaseURL *url.URL
	Http    *resty.Client
}

type Options struct {
	BaseURL string
	// UserAgent overrides the default desktop browser user agent.
	UserAgent string
}

func New(opts Options) (*Session, error) {
	baseUrl, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "tbgclient/session/http")

	return &Session{
		BaseURL: baseUrl,
		Http:    client,
	}, nil
}

// Login authenticates against the forum's login2 action. SMF hides a
// session check token in the login form, so the form is fetched first and
// every hidden input is echoed back.
func (s *Session) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "session:Login")
	defer span.End()

	res, err := s.Http.R().
		SetContext(ctx).
		Get("/index.php?action=login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login form")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse login form html")
		return err
	}

	form := map[string]string{
		"user":         username,
		"passwrd":      password,
		"cookielength": "-1",
	}
	doc.Find("form#frmLogin input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		form[name] = input.AttrOr("value", "")
	})

	res, err = s.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post("/index.php?action=login2")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	err = parse.CheckErrors(res.String(), res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forum rejected login")
		return err
	}

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse post-login html")
		return err
	}
	if doc.Find("a[href*='action=logout']").Length() == 0 {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	return nil
}
