package order

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// FlexNumber aceita número JSON ou string numérica ("2", "10.5").
// Valores ilegíveis não interrompem o decode: ficam marcados como inválidos
// e normalizam para 0 depois. Present distingue campo enviado de campo
// ausente/null, que é o que decide se um alias entra no lugar.
type FlexNumber struct {
	Value   float64
	Valid   bool
	Present bool
}

// Float retorna o valor coerente: inválido ou não-finito vira 0.
func (f FlexNumber) Float() float64 {
	if !f.Valid || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return 0
	}
	return f.Value
}

func (f *FlexNumber) UnmarshalJSON(b []byte) error {
	f.Value = 0
	f.Valid = false
	f.Present = false

	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	f.Present = true
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Float())
}

// FlexString aceita string ou número JSON (número de pedido pode vir como 7 ou "7").
type FlexString struct {
	Value string
	Valid bool
}

func (f *FlexString) UnmarshalJSON(b []byte) error {
	f.Value = ""
	f.Valid = false

	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		f.Value = str
		f.Valid = str != ""
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return nil
	}
	f.Value = num.String()
	f.Valid = true
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// FlexTime aceita RFC3339, "2006-01-02 15:04:05" ou epoch (segundos/milissegundos).
type FlexTime struct {
	Value time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (f *FlexTime) UnmarshalJSON(b []byte) error {
	f.Value = time.Time{}
	f.Valid = false

	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, str); err == nil {
				f.Value = t
				f.Valid = true
				return nil
			}
		}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	// Heurística: valores acima de 1e12 são epoch em milissegundos.
	if v > 1e12 {
		f.Value = time.UnixMilli(int64(v))
	} else {
		f.Value = time.Unix(int64(v), 0)
	}
	f.Valid = true
	return nil
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// RawProduct é a referência aninhada de produto usada como fallback de
// nome/unidade/preço do item.
type RawProduct struct {
	Name  *string    `json:"name"`
	Unit  *string    `json:"unit"`
	Price FlexNumber `json:"price"`
}

// RawOrderItem é o item em formato livre: campos opcionais, aliases de nome
// de campo e números possivelmente em string.
type RawOrderItem struct {
	ProductID *string     `json:"productId"`
	Name      *string     `json:"name"`
	Unit      *string     `json:"unit"`
	Quantity  FlexNumber  `json:"quantity"`
	Qty       FlexNumber  `json:"qty"`
	UnitPrice FlexNumber  `json:"unitPrice"`
	Price     FlexNumber  `json:"price"`
	Total     FlexNumber  `json:"total"`
	Product   *RawProduct `json:"product"`
}

// RawCustomer é o snapshot de cliente em formato livre.
type RawCustomer struct {
	ID    *string `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// RawOrder é o pedido como chega de fora: linha persistida, payload do
// cliente ou estado de rascunho. Tudo é opcional.
type RawOrder struct {
	ID        *string        `json:"id"`
	Number    FlexString     `json:"number"`
	Customer  *RawCustomer   `json:"customer"`
	Items     []RawOrderItem `json:"items"`
	Total     FlexNumber     `json:"total"`
	Notes     *string        `json:"notes"`
	CreatedAt FlexTime       `json:"createdAt"`
	// IssuedAt é o nome do campo no pedido canônico; aceitar os dois
	// mantém a normalização estável sob re-normalização.
	IssuedAt FlexTime `json:"issuedAt"`
}
