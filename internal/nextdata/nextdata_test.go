package nextdata

import (
	"errors"
	"testing"
)

const page = `<!DOCTYPE html><html><head><title>Verify</title></head><body>
<div id="root"></div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"csrfToken":"tok-123"}},"page":"/account/mfa/verify-bank"}</script>
</body></html>`

func TestCSRFToken(t *testing.T) {
	tok, err := CSRFToken([]byte(page))
	if err != nil {
		t.Fatalf("CSRFToken: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("got %q, want tok-123", tok)
	}
}

func TestCSRFTokenNoScriptTag(t *testing.T) {
	_, err := CSRFToken([]byte(`<html><body>nothing here</body></html>`))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCSRFTokenBadJSON(t *testing.T) {
	bad := `<script id="__NEXT_DATA__" type="application/json">{not json}</script>`
	if _, err := CSRFToken([]byte(bad)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCSRFTokenMissingField(t *testing.T) {
	empty := `<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{}}}</script>`
	_, err := CSRFToken([]byte(empty))
	if !errors.Is(err, ErrNoCSRFToken) {
		t.Fatalf("got %v, want ErrNoCSRFToken", err)
	}
}
