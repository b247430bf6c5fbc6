// Package excel gera a planilha de pedidos para download.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// Exporter exportador de pedidos para Excel.
type Exporter struct{}

// NewExporter cria o exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export monta a planilha com um pedido por linha.
func (e *Exporter) Export(orders []store.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Pedidos"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"Número", "Data", "Cliente", "E-mail", "Itens", "Observação", "Total (R$)",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	currencyStyle, _ := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
	})

	for i, o := range orders {
		row := i + 2

		customerName := ""
		customerEmail := ""
		if o.Customer != nil {
			customerName = o.Customer.Name
			if o.Customer.Email != nil {
				customerEmail = *o.Customer.Email
			}
		}
		notes := ""
		if o.Notes != nil {
			notes = *o.Notes
		}

		values := []any{
			o.Number,
			o.CreatedAt.Format("02/01/2006 15:04"),
			customerName,
			customerEmail,
			len(o.Items),
			notes,
			o.Total,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("escrever célula %s: %w", cell, err)
			}
		}

		totalCell, _ := excelize.CoordinatesToCellName(len(values), row)
		f.SetCellStyle(sheetName, totalCell, totalCell, currencyStyle)
	}

	widths := []float64{10, 18, 28, 28, 8, 32, 14}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	return f, nil
}
