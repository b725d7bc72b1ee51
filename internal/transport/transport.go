// Package transport builds the HTTP client used for every call to the
// external payment API. The API fronts a consumer web app and rejects
// clients that do not look like a browser, so requests go out through a
// TLS-fingerprinted client rather than net/http.
package transport

import (
	"fmt"
	"time"

	tlsclient "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// UserAgent is the fixed desktop browser identity sent on every request.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single round-trip. The core defines no deadline
// policy of its own beyond this transport-level cap.
const DefaultTimeout = 30 * time.Second

// Options tunes the constructed client.
type Options struct {
	Timeout  time.Duration
	ProxyURL string
}

// New returns a browser-profiled HTTP client. Redirects are never followed:
// the handshake reads artifacts off individual responses and an implicit
// redirect would swallow their Set-Cookie headers.
func New(opts Options) (tlsclient.HttpClient, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientOpts := []tlsclient.HttpClientOption{
		tlsclient.WithClientProfile(profiles.Chrome_120),
		tlsclient.WithNotFollowRedirects(),
		tlsclient.WithTimeoutSeconds(int(timeout.Seconds())),
	}
	if opts.ProxyURL != "" {
		clientOpts = append(clientOpts, tlsclient.WithProxyUrl(opts.ProxyURL))
	}

	client, err := tlsclient.NewHttpClient(tlsclient.NewNoopLogger(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("build tls client: %w", err)
	}
	return client, nil
}
