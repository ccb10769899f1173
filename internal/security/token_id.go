package security

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

const (
	TokenIDLength   = 24
	TokenIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// NewTokenID returns a random identifier for the jti claim of picker tokens.
func NewTokenID() (string, error) {
	return randomToken(rand.Reader, TokenIDLength, TokenIDAlphabet)
}

// randomToken draws length characters uniformly from alphabet.
func randomToken(source io.Reader, length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	token := make([]byte, length)
	for index := range token {
		position, err := rand.Int(source, limit)
		if err != nil {
			return "", err
		}
		token[index] = alphabet[position.Int64()]
	}
	return string(token), nil
}
