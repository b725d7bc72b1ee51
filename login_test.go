package venmo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"
)

func TestLoginSuccess(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)

	// Tighten the scripted steps with the attachment rules each one must
	// honor.
	d.handle("POST venmo.com/login", func(req *http.Request, body []byte) (*http.Response, error) {
		if cookie := req.Header.Get("Cookie"); !strings.Contains(cookie, "v_id=fp01-") {
			t.Errorf("credential submission missing device cookie: %q", cookie)
		}
		var sent map[string]string
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Fatalf("unmarshal login body: %v", err)
		}
		if sent["phoneEmailUsername"] != testCreds.Username || sent["password"] != testCreds.Password || sent["return_json"] != "true" {
			t.Errorf("unexpected login body: %s", body)
		}
		h := http.Header{}
		h.Set("venmo-otp-secret", testOTPSecret)
		return respondWith(401, `{"error":{"message":"Additional authentication is required"}}`, h), nil
	})
	d.handle("GET account.venmo.com/account/mfa/verify-bank", func(req *http.Request, body []byte) (*http.Response, error) {
		if got := req.URL.Query().Get("k"); got != testOTPSecret {
			t.Errorf("verify-bank k=%q, want %q", got, testOTPSecret)
		}
		h := http.Header{}
		h.Add("Set-Cookie", "_csrf="+testCSRFCookie+"; Path=/; HttpOnly")
		return respondWith(200, verifyBankPage, h), nil
	})
	d.handle("POST account.venmo.com/api/account/mfa/sign-in", func(req *http.Request, body []byte) (*http.Response, error) {
		if got := req.Header.Get("venmo-otp-secret"); got != testOTPSecret {
			t.Errorf("mfa sign-in otp header %q", got)
		}
		if req.Header.Get("csrf-token") != testCSRFToken || req.Header.Get("xsrf-token") != testCSRFToken {
			t.Error("mfa sign-in missing duplicated csrf headers")
		}
		cookie := req.Header.Get("Cookie")
		for _, want := range []string{"v_id=fp01-", "_csrf=" + testCSRFCookie, "login_email=" + testCreds.Username} {
			if !strings.Contains(cookie, want) {
				t.Errorf("mfa sign-in cookie %q missing %q", cookie, want)
			}
		}
		var sent struct {
			AccountNumber string `json:"accountNumber"`
			IsGroup       bool   `json:"isGroup"`
		}
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Fatalf("unmarshal mfa body: %v", err)
		}
		if sent.AccountNumber != testCreds.BankAccountNumber || sent.IsGroup {
			t.Errorf("unexpected mfa body: %s", body)
		}
		h := http.Header{}
		h.Add("Set-Cookie", "api_access_token="+testAccessToken+"; Path=/; Secure")
		return respondWith(200, `{}`, h), nil
	})
	d.handle("POST account.venmo.com/api/device-data", func(req *http.Request, body []byte) (*http.Response, error) {
		cookie := req.Header.Get("Cookie")
		if !strings.Contains(cookie, "api_access_token="+testAccessToken) {
			t.Errorf("device-data cookie %q missing access token", cookie)
		}
		var sent struct {
			CorrelationID string `json:"correlationId"`
		}
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Fatalf("unmarshal device-data body: %v", err)
		}
		if sent.CorrelationID == "" {
			t.Error("device-data sent empty correlation id")
		}
		h := http.Header{}
		h.Add("Set-Cookie", "w_fc="+testWFC+"; Path=/")
		return respondWith(200, `{}`, h), nil
	})

	c := newTestClient(t, d)
	token, err := c.Login(context.Background())
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != testAccessToken {
		t.Fatalf("token %q, want %q", token, testAccessToken)
	}
	if c.State() != StateAuthenticated {
		t.Fatalf("state %v, want authenticated", c.State())
	}

	session := c.Session()
	if session.AccessToken != testAccessToken || session.CSRFToken != testCSRFToken ||
		session.CSRFCookie != testCSRFCookie || session.DeviceCorrelation != testWFC {
		t.Fatalf("incomplete session after login: %+v", session)
	}
	if len(d.calls) != 4 {
		t.Fatalf("expected 4 round-trips, got %v", d.calls)
	}
}

func TestLoginUnexpectedCredentialStatus(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST venmo.com/login", func(req *http.Request, body []byte) (*http.Response, error) {
		return respond(200, `{}`), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if !strings.Contains(err.Error(), "200") {
		t.Fatalf("error %q does not name the offending status", err)
	}
	if c.State() != StateFailed {
		t.Fatalf("state %v, want failed", c.State())
	}
	if c.Session() != (Session{}) {
		t.Fatalf("session not cleared: %+v", c.Session())
	}
	if len(d.calls) != 1 {
		t.Fatalf("handshake continued past the failing step: %v", d.calls)
	}
}

func TestLoginWrongChallengeMessage(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST venmo.com/login", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Set("venmo-otp-secret", testOTPSecret)
		return respondWith(401, `{"error":{"message":"Your password is incorrect"}}`, h), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if !strings.Contains(err.Error(), "Your password is incorrect") {
		t.Fatalf("error %q does not carry the unexpected message", err)
	}
}

func TestLoginMissingOTPSecret(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST venmo.com/login", func(req *http.Request, body []byte) (*http.Response, error) {
		return respond(401, `{"error":{"message":"Additional authentication is required"}}`), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if !strings.Contains(err.Error(), "venmo-otp-secret") {
		t.Fatalf("error %q does not name the missing header", err)
	}
}

func TestLoginMissingCSRFCookie(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("GET account.venmo.com/account/mfa/verify-bank", func(req *http.Request, body []byte) (*http.Response, error) {
		// Page is well formed; only the cookie is missing. The parse of the
		// HTML must never be reached.
		return respond(200, verifyBankPage), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if !strings.Contains(err.Error(), "_csrf") {
		t.Fatalf("error %q does not name the missing cookie", err)
	}
	if len(d.calls) != 2 {
		t.Fatalf("handshake continued past verify-bank: %v", d.calls)
	}
	if c.Session() != (Session{}) {
		t.Fatalf("session not cleared: %+v", c.Session())
	}
}

func TestLoginMissingNextData(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("GET account.venmo.com/account/mfa/verify-bank", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Add("Set-Cookie", "_csrf="+testCSRFCookie+"; Path=/")
		return respondWith(200, `<html><body>maintenance</body></html>`, h), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
}

func TestLoginMFARejected(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST account.venmo.com/api/account/mfa/sign-in", func(req *http.Request, body []byte) (*http.Response, error) {
		return respond(400, `{"error":{"message":"We could not verify this bank account"}}`), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	// The MFA step keeps the body for diagnostics.
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "could not verify") {
		t.Fatalf("error %q missing status or body diagnostics", err)
	}
	if c.State() != StateFailed {
		t.Fatalf("state %v, want failed", c.State())
	}
}

func TestLoginMissingAccessToken(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST account.venmo.com/api/account/mfa/sign-in", func(req *http.Request, body []byte) (*http.Response, error) {
		h := http.Header{}
		h.Add("Set-Cookie", "some_other=thing; Path=/")
		return respondWith(200, `{}`, h), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if !strings.Contains(err.Error(), "api_access_token") {
		t.Fatalf("error %q does not name the missing cookie", err)
	}
}

func TestLoginMissingCorrelationCookie(t *testing.T) {
	d := newFakeDoer(t)
	installHandshake(d)
	d.handle("POST account.venmo.com/api/device-data", func(req *http.Request, body []byte) (*http.Response, error) {
		return respond(200, `{}`), nil
	})

	c := newTestClient(t, d)
	_, err := c.Login(context.Background())
	if !errors.Is(err, ErrProtocolViolation) {
		t.Fatalf("got %v, want ErrProtocolViolation", err)
	}
	if c.Session() != (Session{}) {
		t.Fatalf("session not cleared: %+v", c.Session())
	}
}
