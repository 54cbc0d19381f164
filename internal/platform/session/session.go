// Package session holds the session record carried by the auth-session cookie
// and the codec that is the only place a record is serialized or parsed.
//
// The record is the complete identity snapshot taken at login: role and
// account status are not re-checked against the store on later requests, and
// there is no server-side session state or revocation list. Logout only
// deletes the cookie, so a copied token stays valid until its natural expiry.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed session lifetime. The cookie Max-Age and the token's own
// expiry are both set from it.
const TTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Record is the decoded identity payload. The whole record is embedded in the
// transport token; it never references server state.
type Record struct {
	SubjectID   int64  `json:"subject_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Batch       string `json:"batch"`
	Phone       string `json:"phone,omitempty"`
}

type claims struct {
	Record
	jwt.RegisteredClaims
}

// Codec signs records with HMAC-SHA256 so a client that can write its own
// cookie store cannot forge a session. Decode failures are "not
// authenticated", never a server fault.
type Codec struct {
	secret []byte
	issuer string
}

func NewCodec(secret, issuer string) *Codec {
	if issuer == "" {
		issuer = "masetrack"
	}
	return &Codec{secret: []byte(secret), issuer: issuer}
}

func (c *Codec) Encode(rec Record) (string, error) {
	cl := claims{
		Record: rec,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    c.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString(c.secret)
}

func (c *Codec) Decode(tokenStr string) (*Record, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if cl, ok := token.Claims.(*claims); ok && token.Valid {
		if cl.Issuer != c.issuer {
			return nil, ErrInvalidToken
		}
		rec := cl.Record
		return &rec, nil
	}

	return nil, ErrInvalidToken
}
