package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/datepick/internal/security"
)

const (
	pickerTokenTTL     = 30 * 24 * time.Hour
	pickerTokenPurpose = "picker-token"
	pickerTokenIssuer  = "datepick"
)

var (
	errMissingPickerToken = errors.New("missing picker token")
	errInvalidPickerToken = errors.New("invalid picker token")
)

// pickerClaims bind a bearer token to exactly one picker session.
type pickerClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type pickerTokenCodec struct {
	key []byte
	now func() time.Time
}

func newPickerTokenCodec(secret []byte) (*pickerTokenCodec, error) {
	key, err := security.DeriveKey(secret, pickerTokenPurpose)
	if err != nil {
		return nil, fmt.Errorf("init picker token key: %w", err)
	}
	return &pickerTokenCodec{key: key, now: time.Now}, nil
}

func (codec *pickerTokenCodec) issue(sessionID string) (string, error) {
	tokenID, err := security.NewTokenID()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	now := codec.now()

	claims := pickerClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    pickerTokenIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(pickerTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.key)
}

func (codec *pickerTokenCodec) verify(raw string) (pickerClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return pickerClaims{}, errMissingPickerToken
	}

	claims := pickerClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return codec.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(pickerTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)
	if err != nil || !token.Valid {
		return pickerClaims{}, errInvalidPickerToken
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return pickerClaims{}, errInvalidPickerToken
	}
	return claims, nil
}
