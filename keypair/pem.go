package keypair

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPEM is returned when input does not have the shape of a PEM
// document: a hyphen-delimited header line, a body, and a hyphen-delimited
// footer line.
var ErrInvalidPEM = errors.New("keypair: invalid PEM format")

// pemShape captures the three segments of a PEM document. The header and
// footer are runs of hyphens surrounding a label; the body is everything in
// between. Whitespace inside the body is irrelevant because it is
// re-wrapped during normalization.
var pemShape = regexp.MustCompile(`(?s)^\s*(-+[^-\n]+-+)(.*?)(-+[^-\n]+-+)\s*$`)

// NormalizePEM reconstructs a syntactically valid PEM document from a blob
// whose line wrapping may have been lost or mangled in transit, for example
// by a configuration system collapsing newlines into spaces.
//
// The body is re-split on whitespace runs and rejoined with single newline
// separators between the original header and footer lines. Input that does
// not match the PEM shape at all is rejected with ErrInvalidPEM.
func NormalizePEM(raw []byte) ([]byte, error) {
	m := pemShape.FindSubmatch(raw)
	if m == nil {
		return nil, ErrInvalidPEM
	}

	header := strings.TrimSpace(string(m[1]))
	footer := strings.TrimSpace(string(m[3]))
	body := strings.Join(strings.Fields(string(m[2])), "\n")
	if body == "" {
		return nil, ErrInvalidPEM
	}

	return []byte(header + "\n" + body + "\n" + footer + "\n"), nil
}
