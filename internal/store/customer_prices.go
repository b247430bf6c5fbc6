package store

import (
	"database/sql"
	"fmt"
)

// CustomerPrice preço especial de um produto para um cliente.
type CustomerPrice struct {
	CustomerID string  `json:"customerId"`
	ProductID  string  `json:"productId"`
	Price      float64 `json:"price"`
}

// ListCustomerPrices lista todos os preços especiais.
func (s *Store) ListCustomerPrices() ([]CustomerPrice, error) {
	rows, err := s.db.Query(`SELECT customer_id, product_id, price FROM customer_prices`)
	if err != nil {
		return nil, fmt.Errorf("listar preços especiais: %w", err)
	}
	defer rows.Close()

	var out []CustomerPrice
	for rows.Next() {
		var cp CustomerPrice
		if err := rows.Scan(&cp.CustomerID, &cp.ProductID, &cp.Price); err != nil {
			return nil, fmt.Errorf("ler preço especial: %w", err)
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar preços especiais: %w", err)
	}
	return out, nil
}

// UpsertCustomerPrice cria ou atualiza o preço especial do par
// (cliente, produto).
func (s *Store) UpsertCustomerPrice(cp CustomerPrice) error {
	_, err := s.db.Exec(`
		INSERT INTO customer_prices (customer_id, product_id, price)
		VALUES (?, ?, ?)
		ON CONFLICT(customer_id, product_id) DO UPDATE SET price = excluded.price
	`, cp.CustomerID, cp.ProductID, cp.Price)
	if err != nil {
		return fmt.Errorf("gravar preço especial: %w", err)
	}
	return nil
}

// EffectivePrice preço a aplicar para o cliente: preço especial quando
// existe, senão o preço de tabela do produto.
func (s *Store) EffectivePrice(customerID, productID string) (float64, error) {
	var price sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT COALESCE(
			(SELECT price FROM customer_prices WHERE customer_id = ? AND product_id = ?),
			(SELECT price FROM products WHERE id = ?)
		)
	`, customerID, productID, productID).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolver preço: %w", err)
	}
	if !price.Valid {
		return 0, ErrNotFound
	}
	return price.Float64, nil
}

// DeleteCustomerPrice remove o preço especial.
func (s *Store) DeleteCustomerPrice(customerID, productID string) error {
	res, err := s.db.Exec(`DELETE FROM customer_prices WHERE customer_id = ? AND product_id = ?`, customerID, productID)
	if err != nil {
		return fmt.Errorf("excluir preço especial: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("excluir preço especial: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
