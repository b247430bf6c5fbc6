package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Product produto com preço padrão de tabela.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         *string   `json:"sku,omitempty"`
	Unit        string    `json:"unit"`
	Price       float64   `json:"price"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductPatch campos atualizáveis de produto; nil mantém o atual.
type ProductPatch struct {
	Name  *string
	Unit  *string
	Price *float64
}

// ListProducts lista produtos ativos (soft delete fica de fora).
func (s *Store) ListProducts() ([]Product, error) {
	rows, err := s.db.Query(`
		SELECT id, name, sku, unit, price, description, created_at
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listar produtos: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Unit, &p.Price, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ler produto: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar produtos: %w", err)
	}
	return out, nil
}

// GetProduct busca produto ativo por id.
func (s *Store) GetProduct(id string) (Product, error) {
	var p Product
	err := s.db.QueryRow(`
		SELECT id, name, sku, unit, price, description, created_at
		FROM products
		WHERE id = ? AND deleted_at IS NULL
	`, id).Scan(&p.ID, &p.Name, &p.SKU, &p.Unit, &p.Price, &p.Description, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("buscar produto: %w", err)
	}
	return p, nil
}

// CreateProduct insere um produto novo.
func (s *Store) CreateProduct(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Unit == "" {
		p.Unit = "un"
	}
	_, err := s.db.Exec(`
		INSERT INTO products (id, name, sku, unit, price, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.SKU, p.Unit, p.Price, p.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrDuplicate
		}
		return Product{}, fmt.Errorf("criar produto: %w", err)
	}
	return s.GetProduct(p.ID)
}

// UpdateProduct aplica o patch e devolve o produto atualizado.
func (s *Store) UpdateProduct(id string, patch ProductPatch) (Product, error) {
	current, err := s.GetProduct(id)
	if err != nil {
		return Product{}, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Unit != nil {
		current.Unit = *patch.Unit
	}
	if patch.Price != nil {
		current.Price = *patch.Price
	}

	_, err = s.db.Exec(`
		UPDATE products SET name = ?, unit = ?, price = ? WHERE id = ? AND deleted_at IS NULL
	`, current.Name, current.Unit, current.Price, id)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrDuplicate
		}
		return Product{}, fmt.Errorf("atualizar produto: %w", err)
	}
	return s.GetProduct(id)
}

// SoftDeleteProduct marca o produto como excluído sem apagar a linha, para
// que pedidos antigos continuem resolvendo a referência.
func (s *Store) SoftDeleteProduct(id string) error {
	res, err := s.db.Exec(`UPDATE products SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("excluir produto: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("excluir produto: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
