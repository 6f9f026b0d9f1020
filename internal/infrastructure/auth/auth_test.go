package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"

	"github.com/eslsoft/keymantra/internal/entity"
	"github.com/eslsoft/keymantra/internal/infrastructure/config"
)

const testSecret = "0123456789abcdef"

func sign(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "https://id.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:             "ada@example.com",
		PreferredUsername: "ada",
	}
}

func testVerifier() *Verifier {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret, Issuer: "https://id.example.com"}}
	return NewVerifier(cfg)
}

func TestVerify(t *testing.T) {
	v := testVerifier()
	id, err := v.Verify(sign(t, validClaims(), testSecret))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Subject != "user-1" || id.Email != "ada@example.com" || id.DisplayName() != "ada" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "https://evil.example.com"
	noSubject := validClaims()
	noSubject.Subject = ""

	cases := map[string]string{
		"bad signature": sign(t, validClaims(), "another-secret-value"),
		"expired":       sign(t, expired, testSecret),
		"wrong issuer":  sign(t, wrongIssuer, testSecret),
		"no subject":    sign(t, noSubject, testSecret),
		"garbage":       "not-a-token",
	}
	for name, token := range cases {
		if _, err := v.Verify(token); !errors.Is(err, entity.ErrUnauthenticated) {
			t.Errorf("%s: got %v, want ErrUnauthenticated", name, err)
		}
	}
}

func TestNewVerifierDisabled(t *testing.T) {
	if v := NewVerifier(&config.Config{}); v != nil {
		t.Fatal("empty secret should disable verification")
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer   abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Errorf("bearerToken(%q) = %q, %v", tc.header, token, ok)
		}
	}
}

func TestInterceptor(t *testing.T) {
	var seen entity.Identity
	next := connect.UnaryFunc(func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		seen, _ = IdentityFrom(ctx)
		return connect.NewResponse(&struct{}{}), nil
	})

	req := connect.NewRequest(&struct{}{})
	if _, err := Interceptor(nil)(next)(context.Background(), req); err != nil || seen.Subject != LocalSubject {
		t.Fatalf("disabled auth: identity %+v err %v", seen, err)
	}

	guarded := Interceptor(testVerifier())(next)
	if _, err := guarded(context.Background(), connect.NewRequest(&struct{}{})); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("missing token: got %v", err)
	}

	req = connect.NewRequest(&struct{}{})
	req.Header().Set("Authorization", "Bearer "+sign(t, validClaims(), testSecret))
	if _, err := guarded(context.Background(), req); err != nil || seen.Subject != "user-1" {
		t.Fatalf("valid token: identity %+v err %v", seen, err)
	}
}

func TestIdentityFromEmptyContext(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatal("expected no identity")
	}
}
