// Package address models the hierarchical URIs which identify resources on the service.
//
// An Address is a normalized base URI (scheme and host) followed by path segments.
// Addresses are immutable values: Join returns a new Address.
package address

import (
	"net"
	"net/url"
	"strings"

	"github.com/dydra/dydra/pkg/errors"
)

// ErrInvalidAddress is returned when a base URI cannot be parsed into an Address
var ErrInvalidAddress = errors.New("invalid address")

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Address identifies a resource by scheme, host and path segments
type Address struct {
	scheme   string
	host     string
	segments []string
}

// Parse a base URI such as "https://dydra.com" or "http://localhost:8080/service".
//
// Query strings and fragments are not part of an Address and are rejected.
func Parse(base string) (Address, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return Address{}, ErrInvalidAddress.Wrap(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Address{}, ErrInvalidAddress.Wrapf("%q: scheme and host are required", base)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return Address{}, ErrInvalidAddress.Wrapf("%q: only scheme, host and path are allowed", base)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		// IPv6 literal without a port
		host = "[" + host + "]"
	}

	return Address{
		scheme:   scheme,
		host:     host,
		segments: appendSegments(nil, strings.Split(u.Path, "/")...),
	}, nil
}

// MustParse is like Parse but panics on error
func MustParse(base string) Address {
	a, err := Parse(base)
	if err != nil {
		panic(err)
	}
	return a
}

// Join yields a new Address with some segments appended.
//
// Empty segments are ignored. Segments are taken verbatim: a "/" inside
// a segment is escaped, not interpreted as a separator.
func (a Address) Join(segments ...string) Address {
	joined := make([]string, 0, len(a.segments)+len(segments))
	joined = append(joined, a.segments...)
	return Address{
		scheme:   a.scheme,
		host:     a.host,
		segments: appendSegments(joined, segments...),
	}
}

// IsZero tells if this Address has not been initialized
func (a Address) IsZero() bool {
	return a.scheme == "" && a.host == ""
}

// Segments returns a copy of the path segments, unescaped
func (a Address) Segments() []string {
	return append([]string(nil), a.segments...)
}

// Path is the escaped path, relative to the root of the host (no leading slash)
func (a Address) Path() string {
	escaped := make([]string, len(a.segments))
	for i, s := range a.segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// String representation of the normalized URI
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.scheme)
	b.WriteString("://")
	b.WriteString(a.host)
	if p := a.Path(); p != "" {
		b.WriteByte('/')
		b.WriteString(p)
	}
	return b.String()
}

// WithFormat renders the URI with a format extension such as "nt" or ".nt".
// An empty format yields the plain URI.
func (a Address) WithFormat(format string) string {
	format = strings.TrimPrefix(format, ".")
	if format == "" {
		return a.String()
	}
	return a.String() + "." + format
}

// Equal tells if two addresses have the same normalized representation
func (a Address) Equal(b Address) bool {
	return a.String() == b.String()
}

// Compare orders addresses by their normalized representation.
// It returns -1, 0 or +1.
func (a Address) Compare(b Address) int {
	return strings.Compare(a.String(), b.String())
}

func appendSegments(dst []string, segments ...string) []string {
	for _, s := range segments {
		if s == "" {
			continue
		}
		dst = append(dst, s)
	}
	return dst
}
