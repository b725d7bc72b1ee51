package venmo

import (
	"io"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"
)

// fakeDoer routes requests to scripted handlers keyed by method, host and
// path. No real network is touched.
type fakeDoer struct {
	t        *testing.T
	handlers map[string]func(req *http.Request, body []byte) (*http.Response, error)
	calls    []string
}

func newFakeDoer(t *testing.T) *fakeDoer {
	return &fakeDoer{
		t:        t,
		handlers: make(map[string]func(req *http.Request, body []byte) (*http.Response, error)),
	}
}

func (d *fakeDoer) handle(key string, fn func(req *http.Request, body []byte) (*http.Response, error)) {
	d.handlers[key] = fn
}

func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	key := req.Method + " " + req.URL.Host + req.URL.Path
	d.calls = append(d.calls, key)

	fn, ok := d.handlers[key]
	if !ok {
		d.t.Fatalf("unexpected request %s", key)
	}
	return fn(req, body)
}

func respond(status int, body string) *http.Response {
	return respondWith(status, body, http.Header{})
}

func respondWith(status int, body string, header http.Header) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

var testCreds = Credentials{
	Username:          "someone@example.com",
	Password:          "hunter2",
	BankAccountNumber: "000123456789",
}

const (
	testOTPSecret   = "otp-secret-1"
	testCSRFCookie  = "csrf-cookie-1"
	testCSRFToken   = "csrf-token-1"
	testAccessToken = "access-token-1"
	testWFC         = "wfc-1"
)

const verifyBankPage = `<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"csrfToken":"` + testCSRFToken + `"}}}</script></body></html>`

func newTestClient(t *testing.T, d *fakeDoer) *Client {
	t.Helper()
	c, err := New(testCreds, WithHTTPClient(d))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// installHandshake scripts the four bootstrap endpoints with well-formed
// responses. Individual tests overwrite single steps to break them.
func installHandshake(d *fakeDoer) {
	d.handle("POST venmo.com/login", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Set("venmo-otp-secret", testOTPSecret)
		return respondWith(401, `{"error":{"code":81109,"message":"Additional authentication is required"}}`, h), nil
	})
	d.handle("GET account.venmo.com/account/mfa/verify-bank", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Add("Set-Cookie", "_csrf="+testCSRFCookie+"; Path=/; HttpOnly")
		return respondWith(200, verifyBankPage, h), nil
	})
	d.handle("POST account.venmo.com/api/account/mfa/sign-in", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Add("Set-Cookie", "api_access_token="+testAccessToken+"; Path=/; Secure; HttpOnly")
		return respondWith(201, `{}`, h), nil
	})
	d.handle("POST account.venmo.com/api/device-data", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Add("Set-Cookie", "w_fc="+testWFC+"; Path=/")
		return respondWith(200, `{}`, h), nil
	})
}

// authedClient returns a client with a completed session, skipping the
// handshake.
func authedClient(t *testing.T) (*Client, *fakeDoer) {
	t.Helper()
	d := newFakeDoer(t)
	c := newTestClient(t, d)
	c.session = Session{
		AccessToken:       testAccessToken,
		CSRFToken:         testCSRFToken,
		CSRFCookie:        testCSRFCookie,
		DeviceCorrelation: testWFC,
	}
	c.state = StateAuthenticated
	return c, d
}
