package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/config"
)

// Verification errors. Verify returns exactly one of these so callers can
// tell an unreadable token apart from a forged or stale one.
var (
	ErrMalformedToken   = shared.NewDomainError("TOKEN_MALFORMED", "Token is malformed")
	ErrInvalidSignature = shared.NewDomainError("TOKEN_SIGNATURE", "Token signature is invalid")
	ErrExpiredToken     = shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
)

// Claims represents the JWT claims carried by an issued token
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenService issues and verifies HS256 signed tokens
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	audience   string
}

// NewTokenService creates a token service from config
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}
}

// Issue creates a signed token for the given user
func (s *TokenService) Issue(userID int64, email string, role identity.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		UserID: userID,
		Email:  email,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string and returns its claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformedToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}
	if claims.UserID == 0 {
		return nil, ErrMalformedToken
	}

	return claims, nil
}

// RequireRole verifies the token and checks that its role is one of roles.
// A valid token with a role outside the set fails with shared.ErrForbidden.
func (s *TokenService) RequireRole(tokenString string, roles ...identity.Role) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if claims.Role == string(r) {
			return claims, nil
		}
	}
	return nil, shared.ErrForbidden
}

// Expiration returns the configured token lifetime
func (s *TokenService) Expiration() time.Duration {
	return s.expiration
}
