package token

import (
	"strings"
	"time"
	"unicode"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Introspection is what the client can learn from a token without the
// issuer's keys. Opaque tokens carry nothing beyond their presence.
type Introspection struct {
	Opaque    bool       // True when the token is not a decodable JWT
	Subject   string     // "sub" claim
	ExpiresAt *time.Time // "exp" claim, nil when absent
}

// Expired reports whether the token's exp claim is not after NowTimeFunc.
// The local clock may be off, so this is advisory only.
func (in *Introspection) Expired() bool {
	return in.ExpiresAt != nil && !NowTimeFunc().Before(*in.ExpiresAt)
}

// Inspect checks that raw is usable as a bearer token. Only empty tokens and
// tokens with whitespace are rejected. JWT shaped tokens are decoded without
// verification; anything that does not decode is treated as opaque.
func Inspect(raw string) (*Introspection, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "empty token")
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "token contains whitespace")
	}
	if strings.Count(raw, ".") != 2 {
		return &Introspection{Opaque: true}, nil
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return &Introspection{Opaque: true}, nil
	}
	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return &Introspection{Opaque: true}, nil
	}

	in := &Introspection{}
	in.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		in.ExpiresAt = utils.Ptr(exp.Time)
	}
	return in, nil
}
