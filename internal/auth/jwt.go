package auth

import (
	"errors"

	"github.com/Lraccc/campus-eats-sub003/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload minted by the upstream auth service and
// presented on the realtime channel's token query parameter.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// ParseIdentityToken verifies an HS256 identity token against the
// configured secret and issuer and returns its claims. Any parse,
// signature or claim failure collapses to ErrInvalidToken.
func ParseIdentityToken(cfg *config.JWTConfig, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
