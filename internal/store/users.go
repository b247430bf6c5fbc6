package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User usuário de login.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetUserByEmail busca usuário pelo e-mail de login.
func (s *Store) GetUserByEmail(email string) (User, error) {
	var u User
	err := s.db.QueryRow(`
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("buscar usuário: %w", err)
	}
	return u, nil
}

// UpsertUser cria o usuário se o e-mail ainda não existir; não sobrescreve
// senha de usuário já cadastrado (mesmo comportamento do seed original).
func (s *Store) UpsertUser(email, name, passwordHash string) (User, error) {
	existing, err := s.GetUserByEmail(email)
	if err == nil {
		return existing, nil
	}
	if err != ErrNotFound {
		return User{}, err
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO users (id, email, name, password_hash)
		VALUES (?, ?, ?, ?)
	`, id, email, name, passwordHash); err != nil {
		return User{}, fmt.Errorf("criar usuário: %w", err)
	}
	return s.GetUserByEmail(email)
}
