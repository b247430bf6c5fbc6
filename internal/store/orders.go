package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderItem item de pedido como persistido.
type OrderItem struct {
	ProductID *string `json:"productId"`
	Name      string  `json:"name"`
	Unit      *string `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// Order pedido como persistido, com cliente e itens carregados.
type Order struct {
	ID         string      `json:"id"`
	Number     int64       `json:"number"`
	CustomerID *string     `json:"customerId"`
	Customer   *Customer   `json:"customer,omitempty"`
	Items      []OrderItem `json:"items"`
	Notes      *string     `json:"notes"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewOrderInput dados para criação de pedido. O número sequencial e o total
// são atribuídos pelo servidor.
type NewOrderInput struct {
	CustomerID string
	Notes      *string
	Items      []OrderItem
}

// CreateOrder cria o pedido numa transação: próximo número sequencial,
// total = soma dos totais dos itens.
func (s *Store) CreateOrder(in NewOrderInput) (Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Order{}, fmt.Errorf("abrir transação: %w", err)
	}
	defer tx.Rollback()

	var last sql.NullInt64
	if err := tx.QueryRow(`SELECT MAX(number) FROM orders`).Scan(&last); err != nil {
		return Order{}, fmt.Errorf("buscar último número: %w", err)
	}
	number := last.Int64 + 1

	total := 0.0
	for _, it := range in.Items {
		total += it.Total
	}

	id := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO orders (id, number, customer_id, notes, total)
		VALUES (?, ?, ?, ?, ?)
	`, id, number, in.CustomerID, in.Notes, total); err != nil {
		return Order{}, fmt.Errorf("criar pedido: %w", err)
	}

	for _, it := range in.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, name, unit, quantity, unit_price, total)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, it.ProductID, it.Name, it.Unit, it.Quantity, it.UnitPrice, it.Total); err != nil {
			return Order{}, fmt.Errorf("criar item do pedido: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, fmt.Errorf("confirmar transação: %w", err)
	}
	return s.GetOrder(id)
}

// GetOrder carrega o pedido com cliente e itens.
func (s *Store) GetOrder(id string) (Order, error) {
	var o Order
	err := s.db.QueryRow(`
		SELECT id, number, customer_id, notes, total, created_at
		FROM orders WHERE id = ?
	`, id).Scan(&o.ID, &o.Number, &o.CustomerID, &o.Notes, &o.Total, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("buscar pedido: %w", err)
	}

	if o.CustomerID != nil {
		c, err := s.GetCustomer(*o.CustomerID)
		if err == nil {
			o.Customer = &c
		} else if err != ErrNotFound {
			return Order{}, err
		}
	}

	items, err := s.loadItems(o.ID)
	if err != nil {
		return Order{}, err
	}
	o.Items = items
	return o, nil
}

// ListOrders lista pedidos do mais recente para o mais antigo.
func (s *Store) ListOrders() ([]Order, error) {
	rows, err := s.db.Query(`
		SELECT id, number, customer_id, notes, total, created_at
		FROM orders
		ORDER BY created_at DESC, number DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Notes, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("ler pedido: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar pedidos: %w", err)
	}

	for i := range out {
		if out[i].CustomerID != nil {
			c, err := s.GetCustomer(*out[i].CustomerID)
			if err == nil {
				out[i].Customer = &c
			} else if err != ErrNotFound {
				return nil, err
			}
		}
		items, err := s.loadItems(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (s *Store) loadItems(orderID string) ([]OrderItem, error) {
	rows, err := s.db.Query(`
		SELECT product_id, name, unit, quantity, unit_price, total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar itens do pedido: %w", err)
	}
	defer rows.Close()

	var out []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Unit, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("ler item do pedido: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar itens do pedido: %w", err)
	}
	return out, nil
}
