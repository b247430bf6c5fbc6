// Package store é a camada de persistência em SQLite: clientes, produtos,
// preços por cliente, pedidos e usuários de login.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite3 "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound registro inexistente.
var ErrNotFound = errors.New("registro não encontrado")

// ErrDuplicate violação de unicidade (documento/e-mail/sku já cadastrado).
var ErrDuplicate = errors.New("registro duplicado")

// Store camada de acesso ao banco SQLite.
type Store struct {
	db *sql.DB
}

// New abre (ou cria) o banco no caminho informado e aplica o schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("criar diretório de dados: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("abrir banco: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("conectar ao banco: %w", err)
	}

	// SQLite trabalha melhor com conexão única.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("inicializar schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("ler schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("executar schema: %w", err)
	}
	return nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB conexão bruta (transações e testes).
func (s *Store) DB() *sql.DB {
	return s.db
}

// isUniqueViolation reconhece violação de constraint UNIQUE do SQLite.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
