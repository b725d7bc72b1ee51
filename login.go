package venmo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	http "github.com/bogdanfinn/fhttp"

	"github.com/venmo-unofficial/venmo-go/internal/cookies"
	"github.com/venmo-unofficial/venmo-go/internal/nextdata"
)

// otpSecretHeader carries the short-lived secret identifying an in-progress
// MFA challenge.
const otpSecretHeader = "venmo-otp-secret"

// mfaRequiredMessage is the exact error message a well-formed MFA-protected
// account answers the credential submission with.
const mfaRequiredMessage = "Additional authentication is required"

// Login drives the session bootstrap: credential submission, CSRF
// acquisition from the bank-verification page, MFA completion with the bank
// account number, and the device-correlation call. On success the session
// holds all four artifacts and the access token is returned. Any step
// failure clears the session entirely; there is no partial-success state
// and no internal retry, since a retry would mint a fresh OTP secret and
// invalidate the attempt anyway.
func (c *Client) Login(ctx context.Context) (string, error) {
	c.state = StateUnstarted
	c.session = Session{}

	otpSecret, err := c.submitCredentials(ctx)
	if err != nil {
		return "", c.fail(err)
	}
	c.state = StateMFAChallenged
	c.log.Debug("mfa challenge received")

	if err := c.acquireCSRF(ctx, otpSecret); err != nil {
		return "", c.fail(err)
	}
	c.state = StateCSRFAcquired
	c.log.Debug("csrf material acquired")

	if err := c.completeMFA(ctx, otpSecret); err != nil {
		return "", c.fail(err)
	}
	if err := c.acquireDeviceCorrelation(ctx); err != nil {
		return "", c.fail(err)
	}
	c.state = StateAuthenticated
	c.log.Debug("login complete")

	return c.session.AccessToken, nil
}

func (c *Client) fail(err error) error {
	c.state = StateFailed
	c.session = Session{}
	return err
}

// submitCredentials posts the username/password pair. The expected answer
// for an MFA-protected account is a 401 carrying the OTP secret header.
func (c *Client) submitCredentials(ctx context.Context) (string, error) {
	payload := map[string]string{
		"phoneEmailUsername": c.creds.Username,
		"password":           c.creds.Password,
		"return_json":        "true",
	}
	cookie := cookies.Join(c.deviceCookie())
	req, err := c.newRequest(ctx, http.MethodPost, loginURL, cookie, payload)
	if err != nil {
		return "", err
	}

	status, header, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status != http.StatusUnauthorized {
		return "", fmt.Errorf("%w: expected status 401 from credential submission, got %d", ErrProtocolViolation, status)
	}

	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: unparsable credential submission body: %v", ErrProtocolViolation, err)
	}
	if parsed.Error.Message != mfaRequiredMessage {
		return "", fmt.Errorf("%w: expected the MFA challenge error, got %q", ErrProtocolViolation, parsed.Error.Message)
	}

	otpSecret := header.Get(otpSecretHeader)
	if otpSecret == "" {
		return "", fmt.Errorf("%w: credential submission response has no %s header", ErrProtocolViolation, otpSecretHeader)
	}
	return otpSecret, nil
}

// acquireCSRF fetches the bank-verification page and extracts the _csrf
// cookie plus the csrfToken embedded in the page's __NEXT_DATA__ payload.
// The cookie is checked before the HTML is touched.
func (c *Client) acquireCSRF(ctx context.Context, otpSecret string) error {
	target := verifyBankURL + "?k=" + url.QueryEscape(otpSecret)
	cookie := cookies.Join(c.deviceCookie())
	req, err := c.newRequest(ctx, http.MethodGet, target, cookie, nil)
	if err != nil {
		return err
	}

	_, header, body, err := c.do(req)
	if err != nil {
		return err
	}

	csrfCookie, ok := cookies.Get(header.Values("Set-Cookie"), "_csrf")
	if !ok {
		return fmt.Errorf("%w: verify-bank response set no _csrf cookie", ErrProtocolViolation)
	}

	csrfToken, err := nextdata.CSRFToken(body)
	if err != nil {
		return fmt.Errorf("%w: verify-bank page: %v", ErrProtocolViolation, err)
	}

	c.session.CSRFCookie = csrfCookie
	c.session.CSRFToken = csrfToken
	return nil
}

// completeMFA answers the challenge with the bank account number and
// extracts the api_access_token cookie. This is the step most likely to
// break when the external API shifts, so a failing response body is kept in
// the error for diagnostics.
func (c *Client) completeMFA(ctx context.Context, otpSecret string) error {
	payload := map[string]any{
		"accountNumber": c.creds.BankAccountNumber,
		"isGroup":       false,
	}
	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "_csrf", Value: c.session.CSRFCookie},
		cookies.Pair{Name: "login_email", Value: c.creds.Username},
	)
	req, err := c.newRequest(ctx, http.MethodPost, mfaSignInURL, cookie, payload)
	if err != nil {
		return err
	}
	c.addCSRFHeaders(req)
	req.Header.Set(otpSecretHeader, otpSecret)

	status, header, body, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("%w: mfa sign-in returned status %d: %s", ErrProtocolViolation, status, snippet(body))
	}

	accessToken, ok := cookies.Get(header.Values("Set-Cookie"), "api_access_token")
	if !ok {
		return fmt.Errorf("%w: mfa sign-in response set no api_access_token cookie", ErrProtocolViolation)
	}
	c.session.AccessToken = accessToken
	return nil
}

// acquireDeviceCorrelation posts the correlation id and stores the w_fc
// cookie the API answers with. Login performs this eagerly; Pay performs it
// lazily when the cookie is still missing.
func (c *Client) acquireDeviceCorrelation(ctx context.Context) error {
	payload := map[string]string{"correlationId": c.correlationID}
	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "_csrf", Value: c.session.CSRFCookie},
		cookies.Pair{Name: "api_access_token", Value: c.session.AccessToken},
	)
	req, err := c.newRequest(ctx, http.MethodPost, deviceDataURL, cookie, payload)
	if err != nil {
		return err
	}
	c.addCSRFHeaders(req)

	status, header, _, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: device-data returned status %d", ErrProtocolViolation, status)
	}

	wfc, ok := cookies.Get(header.Values("Set-Cookie"), "w_fc")
	if !ok {
		return fmt.Errorf("%w: device-data response set no w_fc cookie", ErrProtocolViolation)
	}
	c.session.DeviceCorrelation = wfc
	return nil
}

// ensureDeviceCorrelation acquires the w_fc cookie if the session does not
// hold one yet. Some endpoints silently tolerate its absence; payment
// submission does not.
func (c *Client) ensureDeviceCorrelation(ctx context.Context) error {
	if c.session.DeviceCorrelation != "" {
		return nil
	}
	return c.acquireDeviceCorrelation(ctx)
}
