// Package secret provides wrapper types for sensitive configuration values.
//
// Secret and SecretBytes keep passwords, tokens, and private keys from
// leaking through logs, %v formatting, or serialized output. All display
// and marshal paths emit a redacted placeholder; the plaintext is only
// reachable through an explicit Reveal call.
//
// The wrappers unmarshal from plaintext YAML and JSON so that credential
// documents can be authored directly, but they never marshal the plaintext
// back out.
package secret
