// Package session keeps the connected user in a signed cookie. The cookie is
// a JWT whose "user" claim is the JSON user object.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"billed/internal/model"
)

// Key is the name of the cookie holding the user.
const Key = "user"

var ErrNoSession = errors.New("no session")

type claims struct {
	User model.User `json:"user"`
	jwt.RegisteredClaims
}

type Store struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	return &Store{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (s *Store) Get(r *http.Request) (model.User, error) {
	c, err := r.Cookie(Key)
	if err != nil {
		return model.User{}, ErrNoSession
	}

	var cl claims
	token, err := jwt.ParseWithClaims(c.Value, &cl, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return model.User{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if cl.User.Email == "" {
		return model.User{}, fmt.Errorf("%w: user without email", ErrNoSession)
	}
	return cl.User, nil
}

func (s *Store) Set(w http.ResponseWriter, u model.User) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: u,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     Key,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
