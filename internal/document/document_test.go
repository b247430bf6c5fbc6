package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngeloSouza1/ger-ped/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:     "ord-1",
		Number: "7",
		Customer: &order.Customer{
			Name:  "ACME Ltda",
			Email: "compras@acme.com",
			Phone: "11999990000",
		},
		Items: []order.Item{
			{Name: "Café Torrado 500g", Unit: "un", Quantity: 2, UnitPrice: 22.9, Total: 45.8},
			{Name: "Açúcar 1kg", Unit: "kg", Quantity: 3, UnitPrice: 6.5, Total: 19.5},
		},
		Notes:    "Entregar no período da manhã",
		IssuedAt: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		Total:    65.3,
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 22,90", FormatBRL(22.9))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Pedido #7 — ACME Ltda", Subject(sampleOrder()))

	assert.Equal(t, "Pedido #—", Subject(order.Order{}))

	o := sampleOrder()
	o.Customer = nil
	assert.Equal(t, "Pedido #7", Subject(o))
}

func TestPlainText(t *testing.T) {
	text := PlainText(sampleOrder())
	lines := strings.Split(text, "\n")

	assert.Equal(t, "Pedido #7 — ACME Ltda", lines[0])
	assert.Contains(t, text, "Cliente: ACME Ltda")
	assert.Contains(t, text, "E-mail: compras@acme.com")
	assert.Contains(t, text, "Telefone: 11999990000")
	assert.Contains(t, text, "1. Café Torrado 500g — 2 un x R$ 22,90 = R$ 45,80")
	assert.Contains(t, text, "2. Açúcar 1kg — 3 kg x R$ 6,50 = R$ 19,50")
	assert.Contains(t, text, "Total: R$ 65,30")
	assert.Contains(t, text, "Obs.: Entregar no período da manhã")
}

func TestPlainText_OmitsAbsentContactLines(t *testing.T) {
	o := sampleOrder()
	o.Customer.Email = ""
	o.Customer.Phone = ""
	o.Notes = ""

	text := PlainText(o)
	assert.NotContains(t, text, "E-mail:")
	assert.NotContains(t, text, "Telefone:")
	assert.NotContains(t, text, "Obs.:")
}

func TestHTMLDocument_EscapesUserStrings(t *testing.T) {
	o := sampleOrder()
	o.Customer.Name = `<script>alert("x")</script>`
	o.Items[0].Name = "Café <b>& açúcar</b>"
	o.Notes = "a'b\"c"

	html := HTMLDocument(o)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Café &lt;b&gt;&amp; açúcar&lt;/b&gt;")
	assert.Contains(t, html, "a&#39;b&quot;c")
}

func TestHTMLDocument_ZeroItemsPlaceholderRow(t *testing.T) {
	o := sampleOrder()
	o.Items = nil

	html := HTMLDocument(o)
	require.Equal(t, 1, strings.Count(html, "— Sem itens —"))
	assert.Contains(t, html, `colspan="6"`)
}

func TestHTMLDocument_SharesCurrencyFormatting(t *testing.T) {
	html := HTMLDocument(sampleOrder())
	assert.Contains(t, html, "R$ 45,80")
	assert.Contains(t, html, "R$ 65,30")
	assert.Contains(t, html, "Emitido em 05/03/2026 09:30:00")
	assert.Contains(t, html, Disclaimer)
}

func TestPrintableSheet_TwoCopies(t *testing.T) {
	html := PrintableSheet(sampleOrder(), SheetOptions{})

	assert.Contains(t, html, "1ª via — Cliente")
	assert.Contains(t, html, "2ª via — Empresa (resumida)")
	assert.Contains(t, html, `<hr class="cut" />`)
	assert.NotContains(t, html, "page-break\"></div>")
	assert.Contains(t, html, "@page { size: A4 portrait; margin: 8mm; }")
}

func TestPrintableSheet_SplitsPagesAboveThreshold(t *testing.T) {
	o := sampleOrder()
	for i := 0; i < 12; i++ {
		o.Items = append(o.Items, order.Item{Name: "Item", Unit: "un", Quantity: 1, UnitPrice: 1, Total: 1})
	}

	html := PrintableSheet(o, SheetOptions{SplitThreshold: 10})
	assert.Contains(t, html, `<div class="page-break"></div>`)
	assert.NotContains(t, html, `<hr class="cut" />`)
}

func TestPrintableSheet_DefaultThresholdIsThirtyRows(t *testing.T) {
	o := sampleOrder()
	o.Items = nil
	for i := 0; i < 30; i++ {
		o.Items = append(o.Items, order.Item{Name: "Item", Unit: "un", Quantity: 1, UnitPrice: 1, Total: 1})
	}

	// 30 linhas ainda dividem a mesma folha; a 31ª empurra a segunda via
	// para a página seguinte.
	same := PrintableSheet(o, SheetOptions{})
	assert.Contains(t, same, `<hr class="cut" />`)

	o.Items = append(o.Items, order.Item{Name: "Item", Unit: "un", Quantity: 1, UnitPrice: 1, Total: 1})
	split := PrintableSheet(o, SheetOptions{})
	assert.Contains(t, split, `<div class="page-break"></div>`)
	assert.NotContains(t, split, `<hr class="cut" />`)
}

func TestPrintableCopy_MinimalOmitsPriceColumn(t *testing.T) {
	o := sampleOrder()
	full := PrintableCopy(o, "1ª via — Cliente", false)
	minimal := PrintableCopy(o, "2ª via — Empresa (resumida)", true)

	assert.Contains(t, full, ">Preço</th>")
	assert.Contains(t, full, "R$ 22,90")

	assert.NotContains(t, minimal, ">Preço</th>")
	assert.NotContains(t, minimal, "R$ 22,90")
	// O total da linha continua calculado a partir do preço não exibido.
	assert.Contains(t, minimal, "R$ 45,80")
	assert.Contains(t, minimal, "R$ 65,30")
}

func TestPrintableCopy_ZeroItemsPlaceholderSpansColumns(t *testing.T) {
	o := sampleOrder()
	o.Items = nil

	full := PrintableCopy(o, "1ª via — Cliente", false)
	assert.Equal(t, 1, strings.Count(full, "— Sem itens —"))
	assert.Contains(t, full, `colspan="6"`)

	minimal := PrintableCopy(o, "2ª via — Empresa (resumida)", true)
	assert.Equal(t, 1, strings.Count(minimal, "— Sem itens —"))
	assert.Contains(t, minimal, `colspan="5"`)
}
