package venmo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"

	"github.com/venmo-unofficial/venmo-go/internal/cookies"
	"github.com/venmo-unofficial/venmo-go/internal/graphql"
	"github.com/venmo-unofficial/venmo-go/internal/logging"
	"github.com/venmo-unofficial/venmo-go/internal/transport"
)

const (
	loginURL          = "https://venmo.com/login"
	accountBaseURL    = "https://account.venmo.com"
	verifyBankURL     = accountBaseURL + "/account/mfa/verify-bank"
	mfaSignInURL      = accountBaseURL + "/api/account/mfa/sign-in"
	deviceDataURL     = accountBaseURL + "/api/device-data"
	identitiesURL     = accountBaseURL + "/api/user/identities"
	storiesURL        = accountBaseURL + "/api/stories"
	eligibilityURL    = accountBaseURL + "/api/eligibility"
	paymentsURL       = accountBaseURL + "/api/payments"
	legacyPaymentsURL = "https://api.venmo.com/v1/payments"
	graphqlURL        = "https://api.venmo.com/graphql"
)

// devicePrefix is the fingerprint prefix the web client puts in front of
// its device id.
const devicePrefix = "fp01-"

// Credentials are the immutable inputs to the login handshake. The bank
// account number is only used as an MFA verification factor, never as a
// funding source.
type Credentials struct {
	Username          string
	Password          string
	BankAccountNumber string
}

// Doer is the transport the client sends requests through. Satisfied by the
// tls-client produced by internal/transport and by fakes in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the external payment API on behalf of one account. It is
// not safe for concurrent use; callers managing several accounts construct
// one Client per account.
type Client struct {
	creds         Credentials
	deviceID      string
	correlationID string

	http Doer
	gql  *graphql.Client
	log  *slog.Logger

	state   State
	session Session
}

type settings struct {
	doer    Doer
	logger  *slog.Logger
	timeout time.Duration
	proxy   string
}

// Option customizes client construction.
type Option func(*settings)

// WithHTTPClient replaces the default fingerprinted transport.
func WithHTTPClient(d Doer) Option {
	return func(s *settings) { s.doer = d }
}

// WithLogger attaches a logger; handshake steps log at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithTimeout bounds each round-trip of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithProxy routes the default transport through an HTTP or SOCKS5 proxy.
func WithProxy(url string) Option {
	return func(s *settings) { s.proxy = url }
}

// New constructs a client for one account. A fresh device identity is
// generated per client, so two clients never share a fingerprint.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if creds.Username == "" || creds.Password == "" || creds.BankAccountNumber == "" {
		return nil, fmt.Errorf("username, password and bank account number are all required")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.doer == nil {
		doer, err := transport.New(transport.Options{Timeout: s.timeout, ProxyURL: s.proxy})
		if err != nil {
			return nil, err
		}
		s.doer = doer
	}

	return &Client{
		creds:         creds,
		deviceID:      devicePrefix + uuid.NewString(),
		correlationID: uuid.NewString(),
		http:          s.doer,
		gql:           graphql.New(s.doer, graphqlURL),
		log:           s.logger,
	}, nil
}

// Session returns a copy of the current session artifacts.
func (c *Client) Session() Session { return c.session }

// State returns the handshake state.
func (c *Client) State() State { return c.state }

// DeviceID returns the device fingerprint sent as the v_id cookie.
func (c *Client) DeviceID() string { return c.deviceID }

func (c *Client) requireSession() error {
	if !c.session.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (c *Client) deviceCookie() cookies.Pair {
	return cookies.Pair{Name: "v_id", Value: c.deviceID}
}

// newRequest builds a request with the fixed browser identity and an
// assembled Cookie header.
func (c *Client) newRequest(ctx context.Context, method, url, cookie string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", transport.UserAgent)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// addCSRFHeaders duplicates the CSRF token under both header names the API
// has been observed to check. One logical value; the duplication is an
// external quirk kept for compatibility.
func (c *Client) addCSRFHeaders(req *http.Request) {
	req.Header.Set("csrf-token", c.session.CSRFToken)
	req.Header.Set("xsrf-token", c.session.CSRFToken)
}

// do sends a request and returns the status, response headers and the fully
// read body.
func (c *Client) do(req *http.Request) (int, http.Header, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response of %s %s: %w", req.Method, req.URL.Path, err)
	}
	c.log.Debug("request complete", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	return resp.StatusCode, resp.Header, body, nil
}

func is2xx(status int) bool {
	return status >= 200 && status <= 299
}

// snippet trims a response body for inclusion in error messages.
func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
