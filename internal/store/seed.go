package store

import (
	"fmt"

	"github.com/AngeloSouza1/ger-ped/internal/auth"
)

// SeedOptions parâmetros do seed inicial.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	SampleData    bool
}

// Seed garante o usuário administrador e, opcionalmente, dados de exemplo
// (clientes, produtos e preços especiais). Idempotente: registros já
// existentes não são sobrescritos.
func (s *Store) Seed(opts SeedOptions) error {
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	if _, err := s.UpsertUser(opts.AdminEmail, opts.AdminName, hash); err != nil {
		return err
	}

	if !opts.SampleData {
		return nil
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM customers`).Scan(&count); err != nil {
		return fmt.Errorf("verificar clientes: %w", err)
	}
	if count > 0 {
		return nil
	}

	str := func(v string) *string { return &v }

	acme, err := s.CreateCustomer(Customer{
		Name:     "ACME Ltda",
		Email:    str("compras@acme.com"),
		Phone:    str("11999990000"),
		Document: str("12345678000100"),
		City:     str("São Paulo"),
		State:    str("SP"),
		Notes:    str("Cliente prioritário"),
	})
	if err != nil {
		return err
	}
	if _, err := s.CreateCustomer(Customer{
		Name:     "Beta Alimentos",
		Email:    str("contato@beta.com"),
		Phone:    str("11988887777"),
		Document: str("12345678900"),
		City:     str("Osasco"),
		State:    str("SP"),
	}); err != nil {
		return err
	}

	cafe, err := s.CreateProduct(Product{
		Name:        "Café Torrado 500g",
		SKU:         str("CAF-500"),
		Unit:        "un",
		Price:       22.9,
		Description: str("Café torrado e moído 500g"),
	})
	if err != nil {
		return err
	}
	acucar, err := s.CreateProduct(Product{
		Name:        "Açúcar 1kg",
		SKU:         str("ACU-1KG"),
		Unit:        "kg",
		Price:       6.5,
		Description: str("Açúcar refinado 1kg"),
	})
	if err != nil {
		return err
	}

	if err := s.UpsertCustomerPrice(CustomerPrice{CustomerID: acme.ID, ProductID: cafe.ID, Price: 21.5}); err != nil {
		return err
	}
	if err := s.UpsertCustomerPrice(CustomerPrice{CustomerID: acme.ID, ProductID: acucar.ID, Price: 6.2}); err != nil {
		return err
	}
	return nil
}
