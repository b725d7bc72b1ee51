package venmo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	http "github.com/bogdanfinn/fhttp"

	"github.com/venmo-unofficial/venmo-go/internal/cookies"
)

// FeedType selects which transaction feed Stories returns.
type FeedType string

const (
	// FeedMe is the authenticated account's own feed.
	FeedMe FeedType = "me"
	// FeedFriend is the friends feed.
	FeedFriend FeedType = "friend"
)

// Identities lists the identities tied to the authenticated account,
// personal plus any business identity.
func (c *Client) Identities(ctx context.Context) ([]Identity, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "w_fc", Value: c.session.DeviceCorrelation},
		cookies.Pair{Name: "_csrf", Value: c.session.CSRFCookie},
		cookies.Pair{Name: "api_access_token", Value: c.session.AccessToken},
	)
	req, err := c.newRequest(ctx, http.MethodGet, identitiesURL, cookie, nil)
	if err != nil {
		return nil, err
	}

	status, _, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, fmt.Errorf("%w: identities returned %d", ErrUnexpectedStatus, status)
	}

	var identities []Identity
	if err := json.Unmarshal(body, &identities); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}
	return identities, nil
}

// Stories returns one page of the transaction feed for the identity named
// by externalID (from Identities). Callers continue past the first page by
// following NextID themselves.
func (c *Client) Stories(ctx context.Context, feedType FeedType, externalID string) (StoriesResponse, error) {
	if err := c.requireSession(); err != nil {
		return StoriesResponse{}, err
	}

	query := url.Values{}
	query.Set("feedType", string(feedType))
	query.Set("externalId", externalID)
	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "api_access_token", Value: c.session.AccessToken},
	)
	req, err := c.newRequest(ctx, http.MethodGet, storiesURL+"?"+query.Encode(), cookie, nil)
	if err != nil {
		return StoriesResponse{}, err
	}

	status, _, body, err := c.do(req)
	if err != nil {
		return StoriesResponse{}, err
	}
	if !is2xx(status) {
		return StoriesResponse{}, fmt.Errorf("%w: stories returned %d", ErrUnexpectedStatus, status)
	}

	var stories StoriesResponse
	if err := json.Unmarshal(body, &stories); err != nil {
		return StoriesResponse{}, fmt.Errorf("decode stories: %w", err)
	}
	return stories, nil
}

type eligibilityRequest struct {
	TargetType    string      `json:"targetType"`
	TargetID      string      `json:"targetId"`
	AmountInCents int64       `json:"amountInCents"`
	Action        PaymentType `json:"action"`
	Note          string      `json:"note"`
}

// Eligibility checks whether the described transfer is permitted and
// returns the single-use token required by Pay. The token is bound
// server-side to this exact tuple, so call it with the parameters intended
// for the payment, not approximations.
func (c *Client) Eligibility(ctx context.Context, input EligibilityInput) (EligibilityResult, error) {
	if err := c.requireSession(); err != nil {
		return EligibilityResult{}, err
	}

	payload := eligibilityRequest{
		TargetType:    "user_id",
		TargetID:      input.TargetID,
		AmountInCents: input.AmountInCents,
		Action:        input.Action,
		Note:          input.Note,
	}
	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "w_fc", Value: c.session.DeviceCorrelation},
		cookies.Pair{Name: "_csrf", Value: c.session.CSRFCookie},
		cookies.Pair{Name: "api_access_token", Value: c.session.AccessToken},
	)
	req, err := c.newRequest(ctx, http.MethodPost, eligibilityURL, cookie, payload)
	if err != nil {
		return EligibilityResult{}, err
	}
	c.addCSRFHeaders(req)

	status, _, body, err := c.do(req)
	if err != nil {
		return EligibilityResult{}, err
	}
	if !is2xx(status) {
		return EligibilityResult{}, fmt.Errorf("%w: eligibility returned %d: %s", ErrUnexpectedStatus, status, snippet(body))
	}

	var result EligibilityResult
	if err := json.Unmarshal(body, &result); err != nil {
		return EligibilityResult{}, fmt.Errorf("decode eligibility: %w", err)
	}
	return result, nil
}

// Pay submits a payment or request. The endpoint answers a successful
// submission with an empty body, so success here means only a 2xx status;
// confirm the transaction through a later Stories call. The w_fc
// correlation cookie is acquired on demand, since the API rejects payments
// without it.
func (c *Client) Pay(ctx context.Context, payment PaymentRequest) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if err := c.ensureDeviceCorrelation(ctx); err != nil {
		return err
	}

	cookie := cookies.Join(
		c.deviceCookie(),
		cookies.Pair{Name: "_csrf", Value: c.session.CSRFCookie},
		cookies.Pair{Name: "api_access_token", Value: c.session.AccessToken},
		cookies.Pair{Name: "w_fc", Value: c.session.DeviceCorrelation},
	)
	req, err := c.newRequest(ctx, http.MethodPost, paymentsURL, cookie, payment)
	if err != nil {
		return err
	}
	c.addCSRFHeaders(req)

	status, _, body, err := c.do(req)
	if err != nil {
		return err
	}
	if !is2xx(status) {
		return fmt.Errorf("%w: payment submission returned %d: %s", ErrUnexpectedStatus, status, snippet(body))
	}
	return nil
}

// PayLegacy submits a payment through the older v1 endpoint, which takes a
// bearer token instead of the cookie/CSRF combination. Kept because the
// newer endpoint has a history of drifting.
func (c *Client) PayLegacy(ctx context.Context, payment LegacyPaymentRequest) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, legacyPaymentsURL, "", payment)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)

	status, _, body, err := c.do(req)
	if err != nil {
		return err
	}
	if !is2xx(status) {
		return fmt.Errorf("%w: legacy payment returned %d: %s", ErrUnexpectedStatus, status, snippet(body))
	}
	return nil
}
