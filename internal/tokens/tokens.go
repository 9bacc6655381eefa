package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidSubject = errors.New("invalid token subject")
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

// AccountID decodes the subject claim. Only positive decimal ids are accepted.
func (c *AccessClaims) AccountID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidSubject
	}
	return uint(id), nil
}

type Token struct {
	AccessToken string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

// Issuer signs and verifies HS256 access tokens. A zero expiration issues
// tokens without an exp claim.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewIssuer(secret []byte, expiration time.Duration) *Issuer {
	return &Issuer{secret: secret, expiration: expiration, now: time.Now}
}

// WithClock replaces the time source used for iat/exp and for validation.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) Issue(accountID uint) (Token, error) {
	now := i.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(accountID), 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	var out Token
	if i.expiration > 0 {
		out.ExpiresAt = now.Add(i.expiration)
		out.ExpiresIn = int64(i.expiration / time.Second)
		claims.ExpiresAt = jwt.NewNumericDate(out.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, err
	}
	out.AccessToken = signed

	return out, nil
}

func (i *Issuer) Parse(raw string) (*AccessClaims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	}
	if i.expiration > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
