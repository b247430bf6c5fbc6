// Package order define o modelo canônico de pedido e a normalização que
// converte entradas heterogêneas (linha persistida, payload JSON, rascunho)
// no formato único consumido por todas as superfícies de renderização.
package order

import (
	"math"
	"strings"
	"time"
)

// Customer snapshot de cliente no pedido canônico.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Item item canônico: números sempre finitos e não-negativos.
type Item struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// Order pedido canônico: é uma visão montada a cada requisição, nunca
// persistida.
type Order struct {
	ID       string    `json:"id,omitempty"`
	Number   string    `json:"number"`
	Customer *Customer `json:"customer,omitempty"`
	Items    []Item    `json:"items"`
	Notes    string    `json:"notes,omitempty"`
	IssuedAt time.Time `json:"issuedAt,omitempty"`
	Total    float64   `json:"total"`
}

// Normalize converte um RawOrder no pedido canônico. Nunca falha: campos
// ausentes ou ilegíveis recebem defaults (0 para números, "-" para nome e
// unidade). Função pura, sem I/O.
func Normalize(raw RawOrder) Order {
	items := make([]Item, 0, len(raw.Items))
	for _, it := range raw.Items {
		items = append(items, normalizeItem(it))
	}

	o := Order{
		Number: raw.Number.Value,
		Items:  items,
	}
	if raw.ID != nil {
		o.ID = *raw.ID
	}
	if raw.Notes != nil {
		o.Notes = strings.TrimSpace(*raw.Notes)
	}
	if raw.CreatedAt.Valid {
		o.IssuedAt = raw.CreatedAt.Value
	} else if raw.IssuedAt.Valid {
		o.IssuedAt = raw.IssuedAt.Value
	}
	if raw.Customer != nil {
		o.Customer = normalizeCustomer(*raw.Customer)
	}

	if raw.Total.Valid {
		o.Total = raw.Total.Float()
	} else {
		sum := 0.0
		for _, it := range items {
			sum += it.Total
		}
		o.Total = sum
	}
	return o
}

func normalizeItem(it RawOrderItem) Item {
	// quantity ?? qty ?? price — o fallback para "price" atende planilhas
	// antigas em que a coluna de quantidade foi gravada como price. O alias
	// só entra para campo ausente; campo enviado mas ilegível vale 0.
	quantity := clampNonNegative(firstNumber(it.Quantity, it.Qty, it.Price))

	// unitPrice ?? price ?? product.price
	priceCandidates := []FlexNumber{it.UnitPrice, it.Price}
	if it.Product != nil {
		priceCandidates = append(priceCandidates, it.Product.Price)
	}
	unitPrice := clampNonNegative(firstNumber(priceCandidates...))

	total := quantity * unitPrice
	if it.Total.Valid {
		total = it.Total.Float()
	}

	return Item{
		Name:      firstString("-", it.Name, productName(it.Product)),
		Unit:      firstString("-", it.Unit, productUnit(it.Product)),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     finiteOrZero(total),
	}
}

func normalizeCustomer(c RawCustomer) *Customer {
	out := &Customer{Name: "—"}
	if c.Name != nil && strings.TrimSpace(*c.Name) != "" {
		out.Name = strings.TrimSpace(*c.Name)
	}
	if c.Email != nil {
		out.Email = strings.TrimSpace(*c.Email)
	}
	if c.Phone != nil {
		out.Phone = strings.TrimSpace(*c.Phone)
	}
	return out
}

// firstNumber coage o primeiro campo presente; ausentes são pulados e um
// presente ilegível vale 0.
func firstNumber(candidates ...FlexNumber) float64 {
	for _, c := range candidates {
		if c.Present {
			return c.Float()
		}
	}
	return 0
}

// firstString devolve a primeira string não-vazia; senão o placeholder.
func firstString(placeholder string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && strings.TrimSpace(*c) != "" {
			return strings.TrimSpace(*c)
		}
	}
	return placeholder
}

func productName(p *RawProduct) *string {
	if p == nil {
		return nil
	}
	return p.Name
}

func productUnit(p *RawProduct) *string {
	if p == nil {
		return nil
	}
	return p.Unit
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
