// Package nextdata extracts the JSON blob that Next.js pages embed inside
// the __NEXT_DATA__ script tag. The bank-verification page carries the CSRF
// token there, at props.pageProps.csrfToken.
package nextdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var scriptPattern = regexp.MustCompile(`<script id="__NEXT_DATA__" type="application/json">([^<>]+)</script>`)

// ErrNotFound indicates the page does not carry a __NEXT_DATA__ script tag.
var ErrNotFound = errors.New("__NEXT_DATA__ script tag not found")

// ErrNoCSRFToken indicates the embedded payload has no csrfToken field.
var ErrNoCSRFToken = errors.New("csrfToken not present in __NEXT_DATA__ payload")

type payload struct {
	Props struct {
		PageProps struct {
			CSRFToken string `json:"csrfToken"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Extract returns the raw JSON embedded in the page's __NEXT_DATA__ tag.
func Extract(page []byte) ([]byte, error) {
	m := scriptPattern.FindSubmatch(page)
	if m == nil {
		return nil, ErrNotFound
	}
	return m[1], nil
}

// CSRFToken pulls props.pageProps.csrfToken out of the page.
func CSRFToken(page []byte) (string, error) {
	raw, err := Extract(page)
	if err != nil {
		return "", err
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", fmt.Errorf("parse __NEXT_DATA__ payload: %w", err)
	}
	if p.Props.PageProps.CSRFToken == "" {
		return "", ErrNoCSRFToken
	}
	return p.Props.PageProps.CSRFToken, nil
}
