package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Kariqs/prostore-api/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by the session token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type TokenIssuer struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, maxAge time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), maxAge: maxAge, now: time.Now}
}

func (ti *TokenIssuer) MaxAge() time.Duration {
	return ti.maxAge
}

func (ti *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	now := ti.now()
	expiresAt := now.Add(ti.maxAge)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID() == 0 {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
