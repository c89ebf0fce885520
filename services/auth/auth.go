package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"travel-agency/apperror"
	"travel-agency/config"
	"travel-agency/constants"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the payload of an admin access token.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	Username    string
}

// Service checks the single admin account and issues and verifies its tokens.
type Service struct {
	username string
	hash     []byte
	secret   []byte
	method   jwt.SigningMethod
	ttl      time.Duration
	now      func() time.Time
}

// NewService prepares the admin credentials. ADMIN_PASSWORD_HASH wins over
// ADMIN_PASSWORD; a plain password is hashed once here.
func NewService(cfg config.AuthConfig) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing method %q", cfg.JWTAlgorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing method %q is not HMAC", cfg.JWTAlgorithm)
	}

	var hash []byte
	switch {
	case cfg.AdminPasswordHash != "":
		hash = []byte(cfg.AdminPasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
	case cfg.AdminPassword != "":
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}

	return &Service{
		username: cfg.AdminUsername,
		hash:     hash,
		secret:   []byte(cfg.JWTSecret),
		method:   method,
		ttl:      cfg.JWTExpire,
		now:      time.Now,
	}, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(username, password string) (*Token, error) {
	if len(s.hash) == 0 {
		// No password configured: the admin panel is locked.
		return nil, apperror.Unauthorized("Incorrect username or password")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !userOK || passErr != nil {
		return nil, apperror.Unauthorized("Incorrect username or password")
	}
	return s.Issue(s.username)
}

// Issue signs an access token for subject.
func (s *Service) Issue(subject string) (*Token, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		Type: constants.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal("Could not issue token", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: expires, Username: subject}, nil
}

// Verify parses an access token and returns its subject.
func (s *Service) Verify(tokenString string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.Unauthorized("Token has expired")
		}
		return "", apperror.Unauthorized("Could not validate credentials")
	}
	if claims.Type != constants.TokenTypeAccess || claims.Subject == "" {
		return "", apperror.Unauthorized("Could not validate credentials")
	}
	return claims.Subject, nil
}

// TTL is the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
