// Package cookies turns raw Set-Cookie header values into a name→value map
// and assembles Cookie request headers. The external API hands session
// artifacts back exclusively through Set-Cookie, so extraction has to be
// tolerant of attribute ordering and of multiple headers per response.
package cookies

import "strings"

// attributes holds RFC 6265 cookie attribute names that must not be
// mistaken for cookie pairs when a header is parsed segment by segment.
var attributes = map[string]struct{}{
	"path":     {},
	"domain":   {},
	"expires":  {},
	"max-age":  {},
	"samesite": {},
	"secure":   {},
	"httponly": {},
	"priority": {},
}

// Parse flattens one or more Set-Cookie header values into a name→value
// map. Every name=value segment is considered, in order, and the first
// occurrence of a name wins, so extraction does not depend on where in the
// header a cookie sits.
func Parse(headerValues []string) map[string]string {
	out := make(map[string]string)
	for _, hv := range headerValues {
		for _, segment := range strings.Split(hv, ";") {
			segment = strings.TrimSpace(segment)
			name, value, ok := strings.Cut(segment, "=")
			if !ok || name == "" {
				continue
			}
			if _, attr := attributes[strings.ToLower(name)]; attr {
				continue
			}
			if _, seen := out[name]; !seen {
				out[name] = value
			}
		}
	}
	return out
}

// Get extracts a single named cookie from raw Set-Cookie header values.
func Get(headerValues []string, name string) (string, bool) {
	v, ok := Parse(headerValues)[name]
	return v, ok && v != ""
}

// Pair is one cookie to send on a request.
type Pair struct {
	Name  string
	Value string
}

// Join assembles a Cookie request header from pairs, skipping empty values.
// The trailing semicolon matches what the upstream web client sends.
func Join(pairs ...Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		if p.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.Name)
		b.WriteString("=")
		b.WriteString(p.Value)
		b.WriteString(";")
	}
	return b.String()
}
