package document

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formata um valor monetário em pt-BR ("R$ 1.234,56"). Todas as
// superfícies (texto, e-mail HTML, impressão) usam esta função para que o
// mesmo pedido nunca exiba totais diferentes.
func FormatBRL(v float64) string {
	return ptBR.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// FormatQuantity formata quantidade sem zeros à direita ("2", "1.5").
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatIssuedAt formata o timestamp de emissão no padrão pt-BR; zero vira
// o instante atual, como no preview de rascunho.
func formatIssuedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("02/01/2006 15:04:05")
}
