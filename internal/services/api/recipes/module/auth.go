package module

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "brewprints/internal/platform/errors"
	"brewprints/internal/platform/net/middleware"
)

// newTokenPort returns a static bearer token port. An empty token returns
// nil, which the auth middleware treats as passthrough
func newTokenPort(token string) middleware.AuthPort {
	if token == "" {
		return nil
	}
	return tokenPort{token: token}
}

type tokenPort struct{ token string }

func (p tokenPort) Parse(r *http.Request) (string, error) {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return "", perr.New(perr.ErrorCodeUnauthorized, "missing bearer token")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(h, prefix)), []byte(p.token)) != 1 {
		return "", perr.New(perr.ErrorCodeUnauthorized, "invalid bearer token")
	}
	return "admin", nil
}
