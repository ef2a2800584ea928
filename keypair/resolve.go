package keypair

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
)

// PEM block types produced by standard key serialization tools.
const (
	blockTypeEncrypted = "ENCRYPTED PRIVATE KEY"
	blockTypePKCS8     = "PRIVATE KEY"
	blockTypePKCS1     = "RSA PRIVATE KEY"
)

var (
	// ErrKeyEncrypted is returned when the private key is encrypted but no
	// passphrase was supplied.
	ErrKeyEncrypted = errors.New("keypair: passphrase is required for encrypted private key")

	// ErrKeyNotEncrypted is returned when a passphrase was supplied but the
	// private key is not encrypted.
	ErrKeyNotEncrypted = errors.New("keypair: passphrase was given but private key is not encrypted")

	// ErrBadPassphrase is returned when decryption of an encrypted private
	// key fails, almost always because the passphrase is wrong.
	ErrBadPassphrase = errors.New("keypair: bad decrypt, incorrect passphrase")
)

// Resolve normalizes a PEM private key and parses it into an
// *rsa.PrivateKey, decrypting it first when a passphrase is given.
//
// A passphrase that is empty or all-whitespace is treated as absent.
// Passphrase-presence mismatches are reported as ErrKeyEncrypted or
// ErrKeyNotEncrypted; a failed decryption as ErrBadPassphrase; input that
// is not a PEM private key as ErrInvalidPEM.
func Resolve(raw []byte, passphrase string) (*rsa.PrivateKey, error) {
	normalized, err := NormalizePEM(raw)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(normalized)
	if block == nil {
		return nil, ErrInvalidPEM
	}

	passphrase = strings.TrimSpace(passphrase)

	switch block.Type {
	case blockTypeEncrypted:
		if passphrase == "" {
			return nil, ErrKeyEncrypted
		}
		key, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPassphrase, err)
		}
		return key, nil

	case blockTypePKCS8:
		if passphrase != "" {
			return nil, ErrKeyNotEncrypted
		}
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPEM, err)
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key", ErrInvalidPEM)
		}
		return key, nil

	case blockTypePKCS1:
		if passphrase != "" {
			return nil, ErrKeyNotEncrypted
		}
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPEM, err)
		}
		return key, nil

	default:
		return nil, fmt.Errorf("%w: unsupported block type %q", ErrInvalidPEM, block.Type)
	}
}

// ResolveDER resolves a PEM private key to unencrypted PKCS#8 DER bytes,
// the binary form downstream clients accept. See Resolve for the error
// contract.
func ResolveDER(raw []byte, passphrase string) ([]byte, error) {
	key, err := Resolve(raw, passphrase)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("keypair: marshal PKCS#8: %w", err)
	}
	return der, nil
}
