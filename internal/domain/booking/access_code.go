package booking

import (
	"crypto/rand"
	"encoding/base32"
)

var accessCodeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewAccessCode returns the credential shown at check-in.
// Eight base32 characters, readable aloud and unambiguous in print.
func NewAccessCode() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return accessCodeEncoding.EncodeToString(buf), nil
}
