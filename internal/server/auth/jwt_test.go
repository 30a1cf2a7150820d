package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/alexkarev/taskboard/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, PurposeSession, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != userID {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, userID)
	}
	if claims.Purpose != PurposeSession {
		t.Fatalf("purpose mismatch: got %q want %q", claims.Purpose, PurposeSession)
	}
}

func TestGenerateAndParse_VerificationPurposeRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("verification-secret")

	tok, err := GenerateToken("ann@x.com", PurposeEmailVerification, secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != "ann@x.com" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
	if claims.Purpose != PurposeEmailVerification {
		t.Fatalf("purpose mismatch: got %q", claims.Purpose)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", PurposeSession, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", PurposeSession, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_CrossPurposeKeys(t *testing.T) {
	t.Parallel()

	// A verification token signed with the verification key must not parse
	// under the session key even though it is structurally well formed.
	verificationSecret := []byte("verification-secret")
	sessionSecret := []byte("session-secret")

	tok, err := GenerateToken("ann@x.com", PurposeEmailVerification, verificationSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, sessionSecret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseToken_ExpiryIsPreserved(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	validity := 30 * time.Minute

	tok, err := GenerateToken("u3", PurposeSession, secret, validity)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 29*time.Minute || remaining > validity {
		t.Fatalf("unexpected remaining validity: %v", remaining)
	}
}
