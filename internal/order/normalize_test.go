package order

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) RawOrder {
	t.Helper()
	var raw RawOrder
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalize_LineTotalFromQuantityTimesPrice(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"name":"Café","quantity":"2","unitPrice":10}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, "Café", it.Name)
	assert.Equal(t, 2.0, it.Quantity)
	assert.Equal(t, 10.0, it.UnitPrice)
	assert.Equal(t, 20.0, it.Total)
	assert.Equal(t, 20.0, o.Total)
}

func TestNormalize_ExplicitItemTotalWins(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"quantity":3,"unitPrice":10,"total":15}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 15.0, o.Items[0].Total)
	assert.Equal(t, 15.0, o.Total)
}

func TestNormalize_OrderTotalIsSumOfItems(t *testing.T) {
	raw := decodeRaw(t, `{"number":7,"items":[{"total":15},{"total":25}]}`)
	o := Normalize(raw)

	assert.Equal(t, "7", o.Number)
	assert.Equal(t, 40.0, o.Total)
}

func TestNormalize_ExplicitOrderTotalWins(t *testing.T) {
	raw := decodeRaw(t, `{"total":"99.5","items":[{"total":15}]}`)
	o := Normalize(raw)
	assert.Equal(t, 99.5, o.Total)
}

func TestNormalize_UnparseableNumbersBecomeZero(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"name":"X","quantity":"abc"}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, 0.0, it.Quantity)
	assert.Equal(t, 0.0, it.UnitPrice)
	assert.Equal(t, 0.0, it.Total)
	assert.False(t, math.IsNaN(it.Quantity))
}

func TestNormalize_NonFiniteStringsBecomeZero(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"quantity":"Inf","unitPrice":"NaN","total":"-Inf"}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, 0.0, it.Quantity)
	assert.Equal(t, 0.0, it.UnitPrice)
	assert.Equal(t, 0.0, it.Total)
}

func TestNormalize_QtyAlias(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"qty":"4","price":2.5}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, 4.0, it.Quantity)
	assert.Equal(t, 2.5, it.UnitPrice)
	assert.Equal(t, 10.0, it.Total)
}

func TestNormalize_UnparseableQuantityDoesNotFallThroughToPrice(t *testing.T) {
	// Campo enviado mas ilegível coage para 0; o alias price só entra
	// quando quantity/qty não vieram.
	raw := decodeRaw(t, `{"items":[{"quantity":"abc","price":5}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, 0.0, it.Quantity)
	assert.Equal(t, 5.0, it.UnitPrice)
	assert.Equal(t, 0.0, it.Total)
}

func TestNormalize_NullQuantityUsesAlias(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"quantity":null,"qty":4,"unitPrice":2}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 4.0, o.Items[0].Quantity)
	assert.Equal(t, 8.0, o.Items[0].Total)
}

func TestNormalize_LegacyPriceAsQuantityFallback(t *testing.T) {
	// Planilhas antigas gravavam a quantidade no campo price; sem quantity
	// e sem qty, price preenche os dois lados.
	raw := decodeRaw(t, `{"items":[{"price":3}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, 3.0, it.Quantity)
	assert.Equal(t, 3.0, it.UnitPrice)
	assert.Equal(t, 9.0, it.Total)
}

func TestNormalize_ProductFallbacks(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"quantity":2,"product":{"name":"Açúcar 1kg","unit":"kg","price":"6.5"}}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	it := o.Items[0]
	assert.Equal(t, "Açúcar 1kg", it.Name)
	assert.Equal(t, "kg", it.Unit)
	assert.Equal(t, 6.5, it.UnitPrice)
	assert.Equal(t, 13.0, it.Total)
}

func TestNormalize_PlaceholdersForMissingNameAndUnit(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"unit":"  ","quantity":1,"unitPrice":1}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "-", o.Items[0].Name)
	assert.Equal(t, "-", o.Items[0].Unit)
}

func TestNormalize_NegativeValuesClampToZero(t *testing.T) {
	raw := decodeRaw(t, `{"items":[{"quantity":-2,"unitPrice":-10}]}`)
	o := Normalize(raw)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 0.0, o.Items[0].Quantity)
	assert.Equal(t, 0.0, o.Items[0].UnitPrice)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := decodeRaw(t, `{
		"id":"abc",
		"number":"12",
		"customer":{"name":"ACME Ltda","email":"compras@acme.com","phone":"11999990000"},
		"items":[{"name":"Café Torrado 500g","unit":"un","quantity":"2","unitPrice":"22.9"}],
		"notes":"entregar cedo",
		"createdAt":"2026-03-05T09:30:00Z"
	}`)
	first := Normalize(raw)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	second := Normalize(decodeRaw(t, string(encoded)))

	assert.Equal(t, first, second)
}

func TestNormalize_AcceptsIssuedAtAlias(t *testing.T) {
	// O pedido canônico serializa o timestamp como issuedAt; re-normalizar
	// essa saída não pode perder a data.
	issued := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)

	fromCreated := Normalize(decodeRaw(t, `{"createdAt":"2026-03-05T09:30:00Z"}`))
	assert.Equal(t, issued, fromCreated.IssuedAt)

	fromIssued := Normalize(decodeRaw(t, `{"issuedAt":"2026-03-05T09:30:00Z"}`))
	assert.Equal(t, issued, fromIssued.IssuedAt)

	// Com os dois presentes, createdAt (a forma persistida) prevalece.
	both := Normalize(decodeRaw(t, `{"createdAt":"2026-03-05T09:30:00Z","issuedAt":"2027-01-01T00:00:00Z"}`))
	assert.Equal(t, issued, both.IssuedAt)
}

func TestNormalize_EmptyOrder(t *testing.T) {
	o := Normalize(RawOrder{})
	assert.Empty(t, o.Items)
	assert.Equal(t, 0.0, o.Total)
	assert.Nil(t, o.Customer)
	assert.Equal(t, "", o.Number)
}

func TestFlexNumber_Decoding(t *testing.T) {
	cases := []struct {
		in      string
		value   float64
		valid   bool
		present bool
	}{
		{`2`, 2, true, true},
		{`"2"`, 2, true, true},
		{`"10.5"`, 10.5, true, true},
		{`" 7 "`, 7, true, true},
		{`"abc"`, 0, false, true},
		{`null`, 0, false, false},
		{`""`, 0, false, true},
		{`{"x":1}`, 0, false, true},
		{`[1]`, 0, false, true},
		{`true`, 0, false, true},
	}
	for _, tc := range cases {
		var f FlexNumber
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), "input %s", tc.in)
		assert.Equal(t, tc.valid, f.Valid, "input %s", tc.in)
		assert.Equal(t, tc.present, f.Present, "input %s", tc.in)
		assert.Equal(t, tc.value, f.Float(), "input %s", tc.in)
	}
}
