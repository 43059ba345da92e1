// Package auth implements stateless session tokens and the authorization
// rules built on top of them.  A token is an HS256 JWT carrying the user id
// and role; verification is a pure function of (token, secret, current
// time) and never touches the database.  The flip side of statelessness is
// that there is no revocation path: a minted token stays valid until it
// expires, even if the password changes in the meantime.
package auth

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles stored in the users table and embedded in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the verified output of a token check: who is calling and
// with which role.  Handlers receive it from the JWT middleware and pass
// it to the policy functions in this package.
type Identity struct {
	UserID uint64
	Role   string
}

var (
	// ErrMissingCredential means no usable Authorization header was
	// presented (absent, or not a Bearer scheme).
	ErrMissingCredential = errors.New("missing bearer token")
	// ErrInvalidCredential covers every verification failure: bad
	// signature, malformed payload, wrong algorithm or expired token.
	// They are deliberately collapsed into one error so responses do
	// not reveal which check failed.
	ErrInvalidCredential = errors.New("invalid token")
)

// AccessToken represents a signed JWT along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT
// includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).  The TTL is given in hours; logins use the configured
// validity window (48h by default).
func NewAccessToken(secret string, userID uint64, role string, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses and validates a raw JWT and returns the identity it
// asserts.  Signature, signing method and expiry are all checked; any
// failure yields ErrInvalidCredential.
func VerifyToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC so an attacker
		// cannot downgrade the algorithm.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidCredential
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidCredential
	}
	id, ok := subjectID(claims["sub"])
	if !ok || id == 0 {
		return Identity{}, ErrInvalidCredential
	}
	role, _ := claims["role"].(string)
	if role != RoleUser && role != RoleAdmin {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{UserID: id, Role: role}, nil
}

// FromRequest extracts the Bearer token from an Authorization header value
// and verifies it.  A missing or non-Bearer header is reported separately
// from an invalid token so the middleware can keep the two cases apart.
func FromRequest(secret, header string) (Identity, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return Identity{}, ErrMissingCredential
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return Identity{}, ErrMissingCredential
	}
	return VerifyToken(secret, raw)
}

// subjectID coerces the sub claim into a uint64.  JSON numbers decode as
// float64; some issuers encode the id as a string instead.  Negative or
// fractional numbers cannot be row ids, so they are rejected rather than
// converted.
func subjectID(v interface{}) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		if t < 0 || t != math.Trunc(t) {
			return 0, false
		}
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
