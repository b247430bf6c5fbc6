// Package document produz os artefatos de apresentação de um pedido
// canônico: assunto, corpo texto, e-mail HTML e folha de impressão. Todas as
// saídas compartilham o mesmo contrato de layout (cabeçalho + tabela de
// itens + total + rodapé) e a mesma formatação monetária.
package document

import (
	"fmt"
	"strings"

	"github.com/AngeloSouza1/ger-ped/internal/order"
)

// Disclaimer linha de fechamento de todo documento gerado.
const Disclaimer = "Documento gerado eletronicamente. Válido como pedido de compra."

const placeholder = "—"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func displayNumber(o order.Order) string {
	if o.Number == "" {
		return placeholder
	}
	return o.Number
}

// Subject monta o assunto curto: número do pedido e, se houver, o cliente.
func Subject(o order.Order) string {
	subject := "Pedido #" + displayNumber(o)
	if o.Customer != nil && o.Customer.Name != "" && o.Customer.Name != placeholder {
		subject += " — " + o.Customer.Name
	}
	return subject
}

// PlainText monta o corpo texto do e-mail, uma linha por item.
func PlainText(o order.Order) string {
	lines := []string{
		Subject(o),
		"",
	}

	customerName := placeholder
	if o.Customer != nil && o.Customer.Name != "" {
		customerName = o.Customer.Name
	}
	lines = append(lines, "Cliente: "+customerName)
	if o.Customer != nil && o.Customer.Email != "" {
		lines = append(lines, "E-mail: "+o.Customer.Email)
	}
	if o.Customer != nil && o.Customer.Phone != "" {
		lines = append(lines, "Telefone: "+o.Customer.Phone)
	}

	lines = append(lines, "", "Itens:")
	for i, it := range o.Items {
		lines = append(lines, fmt.Sprintf("%d. %s — %s %s x %s = %s",
			i+1, it.Name, FormatQuantity(it.Quantity), it.Unit,
			FormatBRL(it.UnitPrice), FormatBRL(it.Total)))
	}

	lines = append(lines, "", "Total: "+FormatBRL(o.Total))
	if o.Notes != "" {
		lines = append(lines, "Obs.: "+o.Notes)
	}
	return strings.Join(lines, "\n")
}

// HTMLDocument monta o documento HTML autocontido usado no corpo do e-mail:
// cabeçalho, bloco Cliente|Observação em duas colunas, tabela de itens com
// total no rodapé e linha de disclaimer.
func HTMLDocument(o order.Order) string {
	var b strings.Builder

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

	b.WriteString(`<!doctype html>
<html lang="pt-BR">
<head><meta charset="utf-8"/><meta name="viewport" content="width=device-width,initial-scale=1"/>
<title>` + escapeHTML(Subject(o)) + `</title></head>
<body style="margin:0;background:#f6f7f9;padding:24px;font-family:-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica,Arial,sans-serif;color:#0f172a;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:680px;margin:0 auto;background:#ffffff;border:1px solid #e5e7eb;border-radius:12px;overflow:hidden;">
<tr><td style="padding:20px 24px;border-bottom:1px solid #e5e7eb;">
<div style="font-size:18px;font-weight:700;">Pedido #` + escapeHTML(displayNumber(o)) + `</div>
<div style="font-size:12px;color:#64748b;">Emitido em ` + escapeHTML(formatIssuedAt(o.IssuedAt)) + `</div>
</td></tr>
<tr><td style="padding:16px 24px;">
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="border-collapse:collapse;">
<tr>
<td style="width:50%;vertical-align:top;padding-right:12px;">
<div style="font-size:12px;color:#64748b;margin-bottom:4px;">Cliente</div>
<div style="font-weight:600;">` + escapeHTML(customerName) + `</div>
<div style="font-size:12px;color:#334155;margin-top:2px;">`)
	if customerEmail != "" {
		b.WriteString(`<span>` + escapeHTML(customerEmail) + `</span>`)
	}
	if customerEmail != "" && customerPhone != "" {
		b.WriteString(`<span style="color:#94a3b8;"> • </span>`)
	}
	if customerPhone != "" {
		b.WriteString(`<span>` + escapeHTML(customerPhone) + `</span>`)
	}
	b.WriteString(`</div>
</td>
<td style="width:50%;vertical-align:top;padding-left:12px;">
<div style="font-size:12px;color:#64748b;margin-bottom:4px;">Observação</div>
<div>` + escapeHTML(notes) + `</div>
</td>
</tr>
</table>
</td></tr>
<tr><td style="padding:0 24px 16px;">
<table width="100%" cellspacing="0" cellpadding="0" style="border-collapse:collapse;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
<thead>
<tr style="background:#f8fafc;color:#0f172a;">
<th style="padding:10px;border:1px solid #e5e7eb;text-align:left;">#</th>
<th style="padding:10px;border:1px solid #e5e7eb;text-align:left;">Descrição</th>
<th style="padding:10px;border:1px solid #e5e7eb;text-align:center;">UN</th>
<th style="padding:10px;border:1px solid #e5e7eb;text-align:right;">Qtd</th>
<th style="padding:10px;border:1px solid #e5e7eb;text-align:right;">Preço</th>
<th style="padding:10px;border:1px solid #e5e7eb;text-align:right;">Total</th>
</tr>
</thead>
<tbody>`)
	if len(o.Items) == 0 {
		b.WriteString(`<tr><td colspan="6" style="padding:24px;text-align:center;color:#64748b;border:1px solid #e5e7eb;">— Sem itens —</td></tr>`)
	}
	for i, it := range o.Items {
		b.WriteString(fmt.Sprintf(`<tr>
<td style="padding:8px 10px;border:1px solid #e5e7eb;text-align:center;">%d</td>
<td style="padding:8px 10px;border:1px solid #e5e7eb;">%s</td>
<td style="padding:8px 10px;border:1px solid #e5e7eb;text-align:center;">%s</td>
<td style="padding:8px 10px;border:1px solid #e5e7eb;text-align:right;">%s</td>
<td style="padding:8px 10px;border:1px solid #e5e7eb;text-align:right;">%s</td>
<td style="padding:8px 10px;border:1px solid #e5e7eb;text-align:right;font-weight:600;">%s</td>
</tr>`,
			i+1, escapeHTML(it.Name), escapeHTML(it.Unit),
			FormatQuantity(it.Quantity), FormatBRL(it.UnitPrice), FormatBRL(it.Total)))
	}
	b.WriteString(`</tbody>
<tfoot>
<tr>
<td colspan="5" style="padding:10px;border:1px solid #e5e7eb;text-align:right;font-weight:700;">Total</td>
<td style="padding:10px;border:1px solid #e5e7eb;text-align:right;font-weight:700;">` + FormatBRL(o.Total) + `</td>
</tr>
</tfoot>
</table>
</td></tr>
<tr><td style="padding:16px 24px;color:#64748b;font-size:12px;border-top:1px solid #e5e7eb;">
` + Disclaimer + `
</td></tr>
</table>
</body>
</html>`)
	return b.String()
}
