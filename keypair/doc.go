// Package keypair normalizes and resolves PEM private keys for key-pair
// authentication.
//
// Keys that pass through configuration systems frequently lose their line
// wrapping. NormalizePEM repairs the PEM structure (header, body, footer)
// before parsing, so that a key with collapsed or irregular whitespace
// resolves to the same DER bytes as the original.
//
// Resolve converts a normalized PEM key, optionally protected by a
// passphrase, into the *rsa.PrivateKey the warehouse driver expects.
// Encrypted PKCS#8 keys are decrypted via github.com/youmark/pkcs8; plain
// PKCS#8 and PKCS#1 keys are parsed with crypto/x509. Passphrase-presence
// mismatches and decryption failures surface as distinct sentinel errors
// so callers can branch on the failure mode.
package keypair
