package document

import (
	"fmt"
	"strings"

	"github.com/AngeloSouza1/ger-ped/internal/order"
)

// DefaultSplitThreshold quantidade de itens acima da qual as duas vias
// deixam de dividir a mesma folha e passam cada uma para uma página
// (densidade máxima de linhas que ainda cabe meia folha A4).
const DefaultSplitThreshold = 30

// SheetOptions parametriza a folha de impressão.
type SheetOptions struct {
	// SplitThreshold substitui DefaultSplitThreshold quando > 0.
	SplitThreshold int
}

// PrintableSheet monta o HTML de impressão completo: sempre duas vias do
// mesmo pedido — "1ª via — Cliente" (completa) e "2ª via — Empresa
// (resumida)" sem a coluna de preço — separadas por linha de corte ou, acima
// do limiar de densidade, por quebra de página. A4 retrato com margem de 8mm.
func PrintableSheet(o order.Order, opts SheetOptions) string {
	threshold := opts.SplitThreshold
	if threshold <= 0 {
		threshold = DefaultSplitThreshold
	}
	splitPages := len(o.Items) > threshold

	var b strings.Builder
	b.WriteString(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Pedido #` + escapeHTML(displayNumber(o)) + `</title>
<style>
  @page { size: A4 portrait; margin: 8mm; }
  html, body { margin:0; padding:0; font-family: -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; color:#0f172a; }
  .sheet { padding: 0; }
  .copy { page-break-inside: avoid; margin: 0 0 8mm 0; }
  .copy:last-of-type { margin-bottom: 0; }
  .copy-header { display:flex; align-items:center; gap:10px; margin-bottom:6mm; }
  .copy-title { font-weight:700; font-size:16px; }
  .copy-sub { font-size:11px; color:#555; }
  .copy-badge { margin-left:auto; font-size:11px; border:1px solid #333; padding:2px 6px; border-radius:999px; }
  .copy-grid { display:grid; grid-template-columns:1fr 1fr; gap:6px 12px; margin-bottom:6mm; }
  .copy-field label { display:block; font-size:10px; color:#555; }
  .copy-table { width:100%; border-collapse: collapse; font-size:12px; }
  .copy-table th, .copy-table td { border:1px solid #111; padding:6px; }
  .center { text-align:center; } .num { text-align:right; }
  .desc { max-width:0; overflow:hidden; white-space:nowrap; text-overflow:ellipsis; }
  .tfoot th { font-weight:700; }
  .copy-footer { display:flex; align-items:center; gap:10mm; margin-top:6mm; }
  .sign-line { flex:1; border-top:1px dashed #111; text-align:center; padding-top:4mm; font-size:10px; }
  .cut { border:none; border-top:1px dashed #999; margin:8mm 0; }
  .page-break { page-break-before: always; }
</style>
</head>
<body>
  <div class="sheet">
`)
	b.WriteString(PrintableCopy(o, "1ª via — Cliente", false))
	if splitPages {
		b.WriteString("\n    <div class=\"page-break\"></div>\n")
	} else {
		b.WriteString("\n    <hr class=\"cut\" />\n")
	}
	b.WriteString(PrintableCopy(o, "2ª via — Empresa (resumida)", true))
	b.WriteString(`
  </div>
</body>
</html>`)
	return b.String()
}

// PrintableCopy monta uma via: mesma estrutura do documento HTML (cabeçalho,
// cliente/observação, tabela, total). Com minimal=true a coluna de preço
// unitário é omitida; o total da linha continua vindo do preço não exibido.
func PrintableCopy(o order.Order, badge string, minimal bool) string {
	when := formatIssuedAt(o.IssuedAt)

	columns := 6
	if minimal {
		columns = 5
	}

	customerName := placeholder
	customerEmail := ""
	customerPhone := ""
	if o.Customer != nil {
		if o.Customer.Name != "" {
			customerName = o.Customer.Name
		}
		customerEmail = o.Customer.Email
		customerPhone = o.Customer.Phone
	}
	notes := placeholder
	if o.Notes != "" {
		notes = o.Notes
	}

	var rows strings.Builder
	for i, it := range o.Items {
		rows.WriteString(fmt.Sprintf(`
      <tr>
        <td class="center">%d</td>
        <td class="desc">%s</td>
        <td class="center">%s</td>
        <td class="num">%s</td>`,
			i+1, escapeHTML(it.Name), escapeHTML(it.Unit), FormatQuantity(it.Quantity)))
		if !minimal {
			rows.WriteString(`
        <td class="num">` + FormatBRL(it.UnitPrice) + `</td>`)
		}
		rows.WriteString(`
        <td class="num">` + FormatBRL(it.Total) + `</td>
      </tr>`)
	}
	if len(o.Items) == 0 {
		rows.WriteString(fmt.Sprintf(`
      <tr><td class="center" colspan="%d" style="padding:10mm 0">— Sem itens —</td></tr>`, columns))
	}

	var contact strings.Builder
	if customerEmail != "" {
		contact.WriteString(`<span>` + escapeHTML(customerEmail) + `</span>`)
	}
	if customerPhone != "" {
		if customerEmail != "" {
			contact.WriteString(`<span>•</span>`)
		}
		contact.WriteString(`<span>` + escapeHTML(customerPhone) + `</span>`)
	}

	qtyWidth, totalWidth := "12%", "16%"
	if minimal {
		qtyWidth, totalWidth = "16%", "22%"
	}

	var b strings.Builder
	b.WriteString(`  <div class="copy">
    <div class="copy-header">
      <div>
        <div class="copy-title">Emissão de pedidos</div>
        <div class="copy-sub">Pedido #` + escapeHTML(displayNumber(o)) + ` • Emitido em ` + escapeHTML(when) + `</div>
      </div>
      <div class="copy-badge">` + escapeHTML(badge) + `</div>
    </div>

    <div class="copy-grid">
      <div class="copy-field">
        <label>Cliente</label>
        <div>
          <div style="font-weight:700">` + escapeHTML(customerName) + `</div>
          <div style="font-size:10px;display:flex;gap:8px;align-items:center;flex-wrap:wrap">` + contact.String() + `</div>
        </div>
      </div>
      <div class="copy-field">
        <label>Observação</label>
        <div>` + escapeHTML(notes) + `</div>
      </div>
    </div>

    <table class="copy-table">
      <thead>
        <tr>
          <th style="width:5%" class="center">#</th>
          <th>Descrição</th>
          <th style="width:10%" class="center">UN</th>
          <th style="width:` + qtyWidth + `" class="num">Qtd</th>`)
	if !minimal {
		b.WriteString(`
          <th style="width:14%" class="num">Preço</th>`)
	}
	b.WriteString(`
          <th style="width:` + totalWidth + `" class="num">Total</th>
        </tr>
      </thead>
      <tbody>` + rows.String() + `</tbody>
      <tfoot>
        <tr class="tfoot">
          <th colspan="` + fmt.Sprint(columns-1) + `" class="num">Total</th>
          <th class="num">` + FormatBRL(o.Total) + `</th>
        </tr>
      </tfoot>
    </table>

    <div class="copy-footer">
      <div style="font-size:10px">` + Disclaimer + `</div>
      <div class="sign-line"><span>Assinatura / Carimbo</span></div>
    </div>
  </div>`)
	return b.String()
}
