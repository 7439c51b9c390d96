package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalido = errors.New("token inválido ou expirado")

type Claims struct {
	VendedorID uint `json:"vendedor_id"`
	jwt.RegisteredClaims
}

// Tokens emite e valida JWT HS256 com um segredo compartilhado.
type Tokens struct {
	secret    []byte
	expiracao time.Duration
	agora     func() time.Time
}

func NewTokens(secret string, expiracao time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), expiracao: expiracao, agora: time.Now}
}

// Gerar assina um token para o vendedor com validade de t.expiracao.
func (t *Tokens) Gerar(vendedorID uint) (string, error) {
	agora := t.agora()
	claims := &Claims{
		VendedorID: vendedorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(agora),
			ExpiresAt: jwt.NewNumericDate(agora.Add(t.expiracao)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validar confere assinatura, algoritmo e expiração e devolve as claims.
func (t *Tokens) Validar(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.agora),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.VendedorID == 0 {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
