package tokens

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newConfirmer(t *testing.T, secret string) *Confirmer {
	t.Helper()
	c, err := NewConfirmer(secret, 2*time.Minute)
	if err != nil {
		t.Fatalf("NewConfirmer error: %v", err)
	}
	return c.WithClock(func() time.Time { return t0 })
}

func TestIssueVerify(t *testing.T) {
	c := newConfirmer(t, "test-secret-32-bytes-should-be-long-enough")
	tok, err := c.Issue(ActionDelete, 42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if err := c.Verify(tok, ActionDelete, 42); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if err := c.Verify(tok, ActionDelete, 43); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected mismatch on other startup, got %v", err)
	}
	if err := c.Verify(tok, "publish", 42); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected mismatch on other action, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	c := newConfirmer(t, "another-secret-32-bytes-longgggg")
	tok, err := c.Issue(ActionDelete, 1)
	if err != nil {
		t.Fatal(err)
	}
	later := c.WithClock(func() time.Time { return t0.Add(3 * time.Minute) })
	if err := later.Verify(tok, ActionDelete, 1); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expiry failure, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := newConfirmer(t, "secret-one-32-bytes-xxxxxxxxxxxxxxxx").Issue(ActionDelete, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := newConfirmer(t, "different-secret-xxxxxxxxxxxxxxxx").Verify(tok, ActionDelete, 1); err == nil {
		t.Fatal("expected failure with wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	if err := newConfirmer(t, "x").Verify("not.a.jwt", ActionDelete, 1); err == nil {
		t.Fatal("expected failure for malformed token")
	}
}

// unsigned tokens are rejected
func TestVerify_AlgNoneRejected(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	tok := enc([]byte(`{"alg":"none"}`)) + "." + enc([]byte(`{"act":"delete","sid":1,"exp":9999999999}`)) + "."
	if err := newConfirmer(t, "x").Verify(tok, ActionDelete, 1); err == nil {
		t.Fatal("expected alg=none to be rejected")
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	c := newConfirmer(t, "tamper-test-secret-32-bytes-xxxxxxx")
	tok, err := c.Issue(ActionDelete, 7)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(tok, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatal(err)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payload), `"sid":7`, `"sid":8`, 1)))
	if err := c.Verify(strings.Join(parts, "."), ActionDelete, 8); err == nil {
		t.Fatal("expected signature failure for tampered token")
	}
}

func TestVerify_MissingExpiry(t *testing.T) {
	secret := "no-exp-secret"
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ConfirmClaims{Action: ActionDelete, StartupID: 1}).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	if err := newConfirmer(t, secret).Verify(tok, ActionDelete, 1); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected missing expiry to fail, got %v", err)
	}
}

func TestNewConfirmer_EmptySecret(t *testing.T) {
	if _, err := NewConfirmer("", time.Minute); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}
