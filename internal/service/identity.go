package service

import (
	"fmt"

	"github.com/GradGlobe-org/admin-panel-sub000/config"
	"github.com/golang-jwt/jwt/v5"
)

// Identity roles.
const (
	RoleStudent  = "student"
	RoleEmployee = "employee"
)

type Identity struct {
	ID   uint
	Role string
}

// IdentityProvider resolves an opaque bearer token to a student or
// employee identity. The exam core never touches credentials itself.
type IdentityProvider interface {
	ResolveToken(token string) (*Identity, error)
}

type jwtIdentityProvider struct {
	secret []byte
}

func NewJWTIdentityProvider(cfg *config.Config) IdentityProvider {
	return &jwtIdentityProvider{secret: []byte(cfg.JwtSecret)}
}

func (p *jwtIdentityProvider) ResolveToken(token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	idVal, ok := claims["sub_id"].(float64)
	if !ok || idVal <= 0 {
		return nil, ErrUnauthenticated
	}
	role, ok := claims["role"].(string)
	if !ok || (role != RoleStudent && role != RoleEmployee) {
		return nil, ErrUnauthenticated
	}

	return &Identity{ID: uint(idVal), Role: role}, nil
}
