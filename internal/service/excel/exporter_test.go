package excel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngeloSouza1/ger-ped/internal/store"
)

func TestExport(t *testing.T) {
	email := "compras@acme.com"
	notes := "Entregar cedo"
	orders := []store.Order{
		{
			ID:     "ord-1",
			Number: 7,
			Customer: &store.Customer{
				Name:  "ACME Ltda",
				Email: &email,
			},
			Items: []store.OrderItem{
				{Name: "Café Torrado 500g", Quantity: 2, UnitPrice: 22.9, Total: 45.8},
			},
			Notes:     &notes,
			Total:     45.8,
			CreatedAt: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "ord-2",
			Number:    8,
			Total:     0,
			CreatedAt: time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
		},
	}

	f, err := NewExporter().Export(orders)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Pedidos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número", got)

	got, err = f.GetCellValue("Pedidos", "C2")
	require.NoError(t, err)
	assert.Equal(t, "ACME Ltda", got)

	got, err = f.GetCellValue("Pedidos", "A3")
	require.NoError(t, err)
	assert.Equal(t, "8", got)

	rows, err := f.GetRows("Pedidos")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
