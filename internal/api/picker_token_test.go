package api

import (
	"errors"
	"testing"
	"time"
)

func TestPickerTokenRoundTrip(t *testing.T) {
	codec, err := newPickerTokenCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newPickerTokenCodec: %v", err)
	}
	codec.now = func() time.Time { return apiTestNow }

	token, err := codec.issue("session-a")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SessionID != "session-a" || claims.Issuer != pickerTokenIssuer || claims.ID == "" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestPickerTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	codec, err := newPickerTokenCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newPickerTokenCodec: %v", err)
	}
	codec.now = func() time.Time { return apiTestNow }
	token, err := codec.issue("session-a")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.now = func() time.Time { return apiTestNow.Add(pickerTokenTTL + time.Minute) }
	if _, err := codec.verify(token); !errors.Is(err, errInvalidPickerToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}

	other, err := newPickerTokenCodec([]byte("another-secret-key-with-32-bytes-or-more"))
	if err != nil {
		t.Fatalf("newPickerTokenCodec: %v", err)
	}
	other.now = func() time.Time { return apiTestNow }
	if _, err := other.verify(token); !errors.Is(err, errInvalidPickerToken) {
		t.Fatalf("expected token signed with another key to fail, got %v", err)
	}

	if _, err := codec.verify("  "); !errors.Is(err, errMissingPickerToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestPickerTokenCodecRequiresSecret(t *testing.T) {
	if _, err := newPickerTokenCodec(nil); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
}
