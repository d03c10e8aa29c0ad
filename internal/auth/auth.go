// Package auth hashes passwords and issues the JWTs used by the REST API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: cannot hash password: %w", err)
	}
	return string(b), nil
}

// CheckPassword compares pw with a stored hash.
func CheckPassword(hash, pw string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Claims is the identity carried by a token.
type Claims struct {
	UserID    int64
	Username  string
	ID        string // jti
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A non-positive ttl uses DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the given user.
func (i *Issuer) Issue(userID int64, username string) (string, Claims, error) {
	now := i.now()
	c := Claims{
		UserID:    userID,
		Username:  username,
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(i.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       userID,
		"username": username,
		"jti":      c.ID,
		"iat":      now.Unix(),
		"exp":      c.ExpiresAt.Unix(),
	})
	ss, err := token.SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("auth: cannot sign token: %w", err)
	}
	return ss, c, nil
}

// Parse verifies a token and returns its claims.
func (i *Issuer) Parse(tokenStr string) (Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	// JSON numbers decode as float64.
	id, _ := claims["id"].(float64)
	username, _ := claims["username"].(string)
	jti, _ := claims["jti"].(string)
	if id <= 0 || username == "" || jti == "" {
		return Claims{}, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    int64(id),
		Username:  username,
		ID:        jti,
		ExpiresAt: exp.Time,
	}, nil
}
