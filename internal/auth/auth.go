package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anurakx/villadesk/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256 session tokens for the single
// configured admin account.
type Service struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
	nowFn    func() time.Time
}

func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		username: cfg.Username,
		password: cfg.Password,
		secret:   []byte(cfg.Secret),
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		nowFn:    time.Now,
	}
}

// Login checks the credentials and returns a signed token and its
// expiry on success.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	if username != s.username || password != s.password {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.nowFn()
	expiresAt := now.Add(s.tokenTTL)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses a token and returns the authenticated username.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.nowFn))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
