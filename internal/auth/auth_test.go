package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	tok := CreateToken(42)
	uid, ok := ParseToken(tok)
	if !ok || uid != 42 {
		t.Fatalf("ParseToken(%q) = %d, %v", tok, uid, ok)
	}
}

func TestTokenTamperRejected(t *testing.T) {
	tok := CreateToken(42)
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("token format: %q", tok)
	}

	// Swapping the uid without re-signing must fail.
	forged := "7." + parts[1] + "." + parts[2]
	if _, ok := ParseToken(forged); ok {
		t.Errorf("forged uid accepted")
	}

	// Garbage signatures and truncated tokens fail too.
	for _, bad := range []string{
		parts[0] + "." + parts[1] + ".AAAA",
		parts[0] + "." + parts[1],
		"",
		"not-a-token",
	} {
		if _, ok := ParseToken(bad); ok {
			t.Errorf("ParseToken(%q) accepted", bad)
		}
	}
}

func TestTokenExpired(t *testing.T) {
	// Hand-build a token whose expiry is in the past; the signature is valid.
	payload := "42.1000000000"
	tok := payload + "." + sign(payload)
	if _, ok := ParseToken(tok); ok {
		t.Errorf("expired token accepted")
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := BearerToken(r); ok {
		t.Errorf("missing header accepted")
	}
	r.Header.Set("Authorization", "Basic abc")
	if _, ok := BearerToken(r); ok {
		t.Errorf("non-bearer scheme accepted")
	}
	r.Header.Set("Authorization", "Bearer  tok123 ")
	tok, ok := BearerToken(r)
	if !ok || tok != "tok123" {
		t.Errorf("BearerToken = %q, %v", tok, ok)
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	var gotUID uint
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(RequireAuth(inner))

	// No token: 401, inner never runs.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	// Valid token: passes through with the uid in context.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+CreateToken(7))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token status = %d", rec.Code)
	}
	if gotUID != 7 {
		t.Errorf("uid in context = %d, want 7", gotUID)
	}
}
