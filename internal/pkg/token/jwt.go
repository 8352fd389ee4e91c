package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
)

const issuer = "calcados-araujo-api"

// CustomClaims são os dados da sessão: id, nome e papel do usuário.
type CustomClaims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal converte as claims no usuário autenticado da requisição.
func (c *CustomClaims) Principal() domain.Principal {
	return domain.Principal{UserID: c.UserID, Name: c.Name, Role: domain.UserRole(c.Role)}
}

// Service emite e valida JWTs HS256 com validade dependente do papel.
type Service struct {
	secretKey      []byte
	adminTTL       time.Duration
	funcionarioTTL time.Duration
	now            func() time.Time
}

// NewService cria o serviço de tokens.
func NewService(secretKey string, adminTTL, funcionarioTTL time.Duration) *Service {
	return &Service{
		secretKey:      []byte(secretKey),
		adminTTL:       adminTTL,
		funcionarioTTL: funcionarioTTL,
		now:            time.Now,
	}
}

// TTLFor devolve a duração da sessão para o papel: ADMIN 15 min, FUNCIONARIO 8 h por padrão.
func (s *Service) TTLFor(role domain.UserRole) time.Duration {
	if role == domain.RoleAdmin {
		return s.adminTTL
	}
	return s.funcionarioTTL
}

// GenerateToken cria um JWT assinado para o usuário e devolve também o instante de expiração.
func (s *Service) GenerateToken(user domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.TTLFor(user.Role))

	claims := CustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken valida assinatura, emissor e validade, e devolve as claims.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}
