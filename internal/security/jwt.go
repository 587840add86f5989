package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (p *JWTProvider) generate(userID common.UUID, role string, isStaff bool, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		UserID:    userID.String(),
		Role:      role,
		IsStaff:   isStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GeneratePair issues an access/refresh token pair. Refresh tokens are
// stateless like the access tokens, distinguished by the token_type claim.
func (p *JWTProvider) GeneratePair(userID common.UUID, role string, isStaff bool, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	access, expiresAt, err := p.generate(userID, role, isStaff, TokenTypeAccess, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := p.generate(userID, role, isStaff, TokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

func (p *JWTProvider) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != wantType {
		return nil, errors.New("unexpected token type")
	}
	if claims.UserID == "" && claims.Subject != "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

func (p *JWTProvider) ParseAccess(tokenString string) (*Claims, error) {
	return p.parse(tokenString, TokenTypeAccess)
}

func (p *JWTProvider) ParseRefresh(tokenString string) (*Claims, error) {
	return p.parse(tokenString, TokenTypeRefresh)
}
