package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pedidos.db")
	st, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func str(v string) *string { return &v }

func TestCustomerCRUD(t *testing.T) {
	st := newTestStore(t)

	created, err := st.CreateCustomer(Customer{
		Name:     "ACME Ltda",
		Email:    str("compras@acme.com"),
		Phone:    str("11999990000"),
		Document: str("12345678000100"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetCustomer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Ltda", got.Name)

	updated, err := st.UpdateCustomer(created.ID, CustomerPatch{
		Name: str("ACME S.A."),
		City: str("São Paulo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME S.A.", updated.Name)
	require.NotNil(t, updated.City)
	assert.Equal(t, "São Paulo", *updated.City)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "compras@acme.com", *updated.Email)

	list, err := st.ListCustomers()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, st.DeleteCustomer(created.ID))
	_, err = st.GetCustomer(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteCustomer(created.ID), ErrNotFound)
}

func TestCreateCustomer_DuplicateDocument(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateCustomer(Customer{Name: "A", Document: str("123")})
	require.NoError(t, err)

	_, err = st.CreateCustomer(Customer{Name: "B", Document: str("123")})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Documento nulo não conta para a unicidade.
	_, err = st.CreateCustomer(Customer{Name: "C"})
	require.NoError(t, err)
	_, err = st.CreateCustomer(Customer{Name: "D"})
	require.NoError(t, err)
}

func TestProductSoftDelete(t *testing.T) {
	st := newTestStore(t)

	p, err := st.CreateProduct(Product{Name: "Café Torrado 500g", SKU: str("CAF-500"), Unit: "un", Price: 22.9})
	require.NoError(t, err)

	require.NoError(t, st.SoftDeleteProduct(p.ID))

	_, err = st.GetProduct(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := st.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, st.SoftDeleteProduct(p.ID), ErrNotFound)
}

func TestCustomerPrices(t *testing.T) {
	st := newTestStore(t)

	c, err := st.CreateCustomer(Customer{Name: "ACME"})
	require.NoError(t, err)
	p, err := st.CreateProduct(Product{Name: "Café", Price: 22.9})
	require.NoError(t, err)

	// Sem preço especial vale o preço de tabela.
	price, err := st.EffectivePrice(c.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 22.9, price)

	require.NoError(t, st.UpsertCustomerPrice(CustomerPrice{CustomerID: c.ID, ProductID: p.ID, Price: 21.5}))
	price, err = st.EffectivePrice(c.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 21.5, price)

	// Upsert sobre o mesmo par atualiza.
	require.NoError(t, st.UpsertCustomerPrice(CustomerPrice{CustomerID: c.ID, ProductID: p.ID, Price: 20.0}))
	price, err = st.EffectivePrice(c.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, price)

	require.NoError(t, st.DeleteCustomerPrice(c.ID, p.ID))
	_, err = st.EffectivePrice(c.ID, "inexistente")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_SequentialNumbersAndTotal(t *testing.T) {
	st := newTestStore(t)

	c, err := st.CreateCustomer(Customer{Name: "ACME"})
	require.NoError(t, err)

	first, err := st.CreateOrder(NewOrderInput{
		CustomerID: c.ID,
		Items: []OrderItem{
			{Name: "Café Torrado 500g", Unit: str("un"), Quantity: 2, UnitPrice: 22.9, Total: 45.8},
			{Name: "Açúcar 1kg", Unit: str("kg"), Quantity: 3, UnitPrice: 6.5, Total: 19.5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Number)
	assert.InDelta(t, 65.3, first.Total, 1e-9)
	require.Len(t, first.Items, 2)
	require.NotNil(t, first.Customer)
	assert.Equal(t, "ACME", first.Customer.Name)

	second, err := st.CreateOrder(NewOrderInput{CustomerID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Number)
	assert.Equal(t, 0.0, second.Total)

	list, err := st.ListOrders()
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = st.GetOrder("inexistente")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserUpsertDoesNotOverwrite(t *testing.T) {
	st := newTestStore(t)

	u1, err := st.UpsertUser("admin@empresa.com", "Administrador", "hash-1")
	require.NoError(t, err)

	u2, err := st.UpsertUser("admin@empresa.com", "Outro Nome", "hash-2")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	assert.Equal(t, "hash-1", u2.PasswordHash)
}
