package secret

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Redacted is the placeholder emitted wherever a secret would otherwise
// appear in display or marshaled output.
const Redacted = "**********"

// Secret wraps a sensitive string value such as a password or token.
//
// The zero value is "unset": it reports IsZero() == true and is omitted
// from connection parameters. Secret implements fmt.Stringer,
// fmt.GoStringer, slog.LogValuer, and the JSON/YAML marshaler interfaces,
// all of which redact the value.
type Secret struct {
	value string
}

// New returns a Secret holding the given plaintext.
func New(value string) Secret {
	return Secret{value: value}
}

// Reveal returns the plaintext value. The plaintext is not reachable any
// other way; call sites should pass it straight to the consumer and never
// store it.
func (s Secret) Reveal() string {
	return s.value
}

// IsZero reports whether the secret is unset.
func (s Secret) IsZero() bool {
	return s.value == ""
}

// String implements fmt.Stringer, returning the redaction placeholder.
func (s Secret) String() string {
	if s.IsZero() {
		return ""
	}
	return Redacted
}

// GoString implements fmt.GoStringer so %#v does not expose the value.
func (s Secret) GoString() string {
	return "secret.Secret{value: " + s.String() + "}"
}

// LogValue implements slog.LogValuer, redacting the value in log output.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// MarshalJSON implements json.Marshaler, emitting the redaction placeholder.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting a plaintext string.
func (s *Secret) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	s.value = value
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the redaction placeholder.
func (s Secret) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting a plaintext scalar.
func (s *Secret) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	s.value = value
	return nil
}

// SecretBytes wraps a sensitive byte slice such as a PEM private key.
//
// It behaves like Secret with a []byte payload. The zero value is "unset".
type SecretBytes struct {
	value []byte
}

// NewBytes returns a SecretBytes holding the given plaintext bytes.
func NewBytes(value []byte) SecretBytes {
	return SecretBytes{value: value}
}

// Reveal returns the plaintext bytes.
func (s SecretBytes) Reveal() []byte {
	return s.value
}

// IsZero reports whether the secret is unset.
func (s SecretBytes) IsZero() bool {
	return len(s.value) == 0
}

// String implements fmt.Stringer, returning the redaction placeholder.
func (s SecretBytes) String() string {
	if s.IsZero() {
		return ""
	}
	return Redacted
}

// GoString implements fmt.GoStringer so %#v does not expose the value.
func (s SecretBytes) GoString() string {
	return "secret.SecretBytes{value: " + s.String() + "}"
}

// LogValue implements slog.LogValuer, redacting the value in log output.
func (s SecretBytes) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// MarshalJSON implements json.Marshaler, emitting the redaction placeholder.
func (s SecretBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting a plaintext string.
func (s *SecretBytes) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	s.value = []byte(value)
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the redaction placeholder.
func (s SecretBytes) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting a plaintext scalar.
func (s *SecretBytes) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	s.value = []byte(value)
	return nil
}
