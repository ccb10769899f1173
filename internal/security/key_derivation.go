package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const DerivedKeyLength = 32

var (
	ErrEmptySecret  = errors.New("secret is required")
	ErrEmptyPurpose = errors.New("key purpose is required")
)

// DeriveKey expands secret into a purpose-bound key with HKDF-SHA256, so one
// configured secret can sign several kinds of tokens.
func DeriveKey(secret []byte, purpose string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	key := make([]byte, DerivedKeyLength)
	reader := hkdf.New(sha256.New, secret, nil, []byte("datepick."+purpose))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
