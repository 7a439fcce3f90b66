package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arahmani/freelance-ops/internal/httpx"
)

type ctxKey string

const userIDCtxKey = ctxKey("userID")

const tokenTTL = 14 * 24 * time.Hour

// UserVerifier is an optional callback to validate that a token's user still
// exists. Set it during app bootstrap via SetUserVerifier. If nil, no extra
// verification is performed.
type UserVerifier func(ctx context.Context, uid uint) bool

var verifier UserVerifier

// SetUserVerifier configures the global verifier used by RequireAuth.
func SetUserVerifier(v UserVerifier) { verifier = v }

// Secret returns TOKEN_SECRET or default dev value.
func Secret() string {
	if s := os.Getenv("TOKEN_SECRET"); s != "" {
		return s
	}
	return "devtokensecret"
}

// CreateToken issues a signed bearer token "uid.exp.sig" for the user.
func CreateToken(userID uint) string {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	expStr := strconv.FormatInt(time.Now().Add(tokenTTL).Unix(), 10)
	return uidStr + "." + expStr + "." + sign(uidStr+"."+expStr)
}

// ParseToken validates a bearer token and returns the embedded user id.
func ParseToken(token string) (uint, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, false
	}
	uidStr, expStr, sig := parts[0], parts[1], parts[2]
	expected := sign(uidStr + "." + expStr)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return 0, false
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// WithUserID stores user id in context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	v := ctx.Value(userIDCtxKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// Middleware attaches user id to request context if a valid token is present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, ok := BearerToken(r); ok {
			if uid, valid := ParseToken(tok); valid {
				r = r.WithContext(WithUserID(r.Context(), uid))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects unauthenticated requests with 401. The verifier, when
// configured, catches tokens referring to deleted users.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if verifier != nil && !verifier(r.Context(), uid) {
			httpx.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
