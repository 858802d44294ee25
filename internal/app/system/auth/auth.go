// Package auth is the identity gate: it verifies the bearer credential on
// every request and resolves it to a principal before any handler runs.
//
// Verification is stateless per-request; there is no session store. The
// identity subsystem that issues tokens lives outside this service; all we
// hold is the verification key.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/gatherhub/internal/app/system/httpapi"
)

// ErrUnauthenticated is returned when a credential is missing, malformed,
// or fails verification.
var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the resolved identity injected into r.Context().
type Principal struct {
	ID   string // hex ObjectID of the user record
	Name string // display name, may be empty
}

type ctxKey string

const principalKey ctxKey = "principal"

// CurrentPrincipal returns the principal placed in context by RequireBearer,
// plus a "found?" flag.
func CurrentPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

func withPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// WithTestPrincipal injects a principal directly, bypassing verification.
// Handler tests use this instead of minting real tokens.
func WithTestPrincipal(r *http.Request, p Principal) *http.Request {
	return withPrincipal(r, p)
}

// Verifier resolves a bearer credential to a principal. Implementations
// must return ErrUnauthenticated (possibly wrapped) for any credential that
// does not verify.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Principal, error)
}

// tokenClaims is the claim set the identity subsystem signs into tokens.
// The subject carries the principal id.
type tokenClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256-signed bearer tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier builds a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, enforcing the HS256 method and
// expiry, and returns the principal from the subject claim.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (Principal, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return Principal{ID: claims.Subject, Name: claims.Name}, nil
}

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// credential before they reach any store. On success the resolved principal
// is available via CurrentPrincipal.
func RequireBearer(v Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := CurrentPrincipal(r); ok {
				// Already resolved (tests inject principals directly).
				next.ServeHTTP(w, r)
				return
			}

			credential, ok := bearerCredential(r)
			if !ok {
				httpapi.Unauthorized(w)
				return
			}

			p, err := v.Verify(r.Context(), credential)
			if err != nil {
				logger.Debug("bearer verification failed", zap.Error(err))
				httpapi.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, withPrincipal(r, p))
		})
	}
}

// bearerCredential extracts the token from the Authorization header.
func bearerCredential(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
