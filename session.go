package venmo

// Session holds the artifacts acquired during the login handshake. Each
// field is written exactly once per bootstrap run; operations only read it.
type Session struct {
	// AccessToken is the api_access_token cookie value from the MFA sign-in.
	AccessToken string
	// CSRFToken is the anti-forgery token embedded in the verify-bank page.
	CSRFToken string
	// CSRFCookie is the _csrf cookie paired with CSRFToken.
	CSRFCookie string
	// DeviceCorrelation is the w_fc cookie tying requests to a device-data
	// call. Required by payment submission, tolerated elsewhere.
	DeviceCorrelation string
}

// Authenticated reports whether the session carries everything an
// authenticated operation needs. DeviceCorrelation is deliberately not part
// of this check; payment submission acquires it on demand.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.CSRFToken != "" && s.CSRFCookie != ""
}

// State tracks handshake progress.
type State int

const (
	StateUnstarted State = iota
	StateMFAChallenged
	StateCSRFAcquired
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateMFAChallenged:
		return "mfa_challenged"
	case StateCSRFAcquired:
		return "csrf_acquired"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
