// Package auth emite e valida o token de sessão (JWT HS256) gravado no
// cookie de login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidSession token ausente, expirado ou com assinatura inválida.
var ErrInvalidSession = errors.New("sessão inválida")

// Session conteúdo decodificado do token.
type Session struct {
	Email string
	Role  string
}

// Manager assina e verifica tokens de sessão.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager cria um Manager com o segredo e TTL configurados.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL duração da sessão (também usada como max-age do cookie).
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign emite um token HS256 para o e-mail informado.
func (m *Manager) Sign(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("assinar token: %w", err)
	}
	return signed, nil
}

// Verify valida o token e devolve a sessão.
func (m *Manager) Verify(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidSession
	}

	s := Session{}
	if sub, ok := claims["sub"].(string); ok {
		s.Email = sub
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}
	if s.Email == "" {
		return Session{}, ErrInvalidSession
	}
	return s, nil
}

// HashPassword gera o hash bcrypt usado no seed do usuário administrador.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", fmt.Errorf("gerar hash de senha: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara a senha informada com o hash armazenado.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
