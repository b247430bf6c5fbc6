package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Customer cliente cadastrado.
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Document     *string   `json:"document"`
	AddressLine1 *string   `json:"addressLine1,omitempty"`
	AddressLine2 *string   `json:"addressLine2,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	Zip          *string   `json:"zip,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CustomerPatch campos atualizáveis; nil mantém o valor atual.
type CustomerPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	Document     *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Zip          *string
	Notes        *string
}

const customerColumns = `id, name, email, phone, document, address_line1, address_line2, city, state, zip, notes, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Document,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.Zip,
		&c.Notes, &c.CreatedAt)
	return c, err
}

// ListCustomers lista clientes por nome.
func (s *Store) ListCustomers() ([]Customer, error) {
	rows, err := s.db.Query(`SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("ler cliente: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar clientes: %w", err)
	}
	return out, nil
}

// GetCustomer busca cliente por id.
func (s *Store) GetCustomer(id string) (Customer, error) {
	row := s.db.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, fmt.Errorf("buscar cliente: %w", err)
	}
	return c, nil
}

// CreateCustomer insere um cliente novo.
func (s *Store) CreateCustomer(c Customer) (Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO customers (id, name, email, phone, document, address_line1, address_line2, city, state, zip, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Phone, c.Document,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.Zip, c.Notes)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrDuplicate
		}
		return Customer{}, fmt.Errorf("criar cliente: %w", err)
	}
	return s.GetCustomer(c.ID)
}

// UpdateCustomer aplica o patch e devolve o cliente atualizado.
func (s *Store) UpdateCustomer(id string, patch CustomerPatch) (Customer, error) {
	current, err := s.GetCustomer(id)
	if err != nil {
		return Customer{}, err
	}

	apply := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	apply(&current.Email, patch.Email)
	apply(&current.Phone, patch.Phone)
	apply(&current.Document, patch.Document)
	apply(&current.AddressLine1, patch.AddressLine1)
	apply(&current.AddressLine2, patch.AddressLine2)
	apply(&current.City, patch.City)
	apply(&current.State, patch.State)
	apply(&current.Zip, patch.Zip)
	apply(&current.Notes, patch.Notes)

	_, err = s.db.Exec(`
		UPDATE customers SET
			name = ?, email = ?, phone = ?, document = ?,
			address_line1 = ?, address_line2 = ?, city = ?, state = ?, zip = ?, notes = ?
		WHERE id = ?
	`, current.Name, current.Email, current.Phone, current.Document,
		current.AddressLine1, current.AddressLine2, current.City, current.State,
		current.Zip, current.Notes, id)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrDuplicate
		}
		return Customer{}, fmt.Errorf("atualizar cliente: %w", err)
	}
	return s.GetCustomer(id)
}

// DeleteCustomer remove o cliente.
func (s *Store) DeleteCustomer(id string) error {
	res, err := s.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("excluir cliente: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("excluir cliente: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
