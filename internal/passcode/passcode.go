// Package passcode implements the password encoding used for stored account
// secrets.
//
// The scheme is a plain base64 encoding of the plaintext: reversible, and NOT
// a cryptographic hash. It is kept as-is for compatibility with existing
// stored accounts; swapping in a real hash would make every stored secret
// unverifiable and requires an explicit migration.
package passcode

import "encoding/base64"

// Encode returns the stored form of a plaintext password.
func Encode(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// Decode reverses Encode. It exists because the scheme is reversible; nothing
// in the core needs the plaintext back, but tests use it to document the
// round-trip property.
func Decode(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches reports whether a plaintext password corresponds to a stored secret.
func Matches(plaintext, secret string) bool {
	return Encode(plaintext) == secret
}
