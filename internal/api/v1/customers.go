package v1

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var nonDigits = regexp.MustCompile(`\D`)

// firstString procura o primeiro valor string/numérico sob qualquer das
// chaves (comparação case-insensitive). Payloads de clientes chegam com
// variações de nome de campo (name/nome, phone/telefone...).
func firstString(obj map[string]any, keys ...string) string {
	for _, want := range keys {
		for k, v := range obj {
			if !strings.EqualFold(k, want) {
				continue
			}
			switch t := v.(type) {
			case string:
				return t
			case float64:
				return strconv.FormatFloat(t, 'f', -1, 64)
			}
		}
	}
	return ""
}

// pickCustomerShape aceita payloads { customer: {...} } ou { data: {...} } além do
// objeto plano.
func pickCustomerShape(raw map[string]any) map[string]any {
	for _, key := range []string{"customer", "data"} {
		for k, v := range raw {
			if strings.EqualFold(k, key) {
				if nested, ok := v.(map[string]any); ok {
					return nested
				}
			}
		}
	}
	return raw
}

// ListCustomers lista clientes.
// GET /api/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	rows, err := h.store.ListCustomers()
	if err != nil {
		h.logger.Error("Falha ao listar clientes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar clientes"})
		return
	}
	if rows == nil {
		rows = []store.Customer{}
	}
	c.JSON(http.StatusOK, rows)
}

// CreateCustomer cria cliente aceitando as variações comuns de payload.
// POST /api/customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	obj := pickCustomerShape(raw)

	name := strings.TrimSpace(firstString(obj, "name", "nome", "customerName", "razaoSocial", "fantasia"))
	email := strings.TrimSpace(firstString(obj, "email"))
	phone := nonDigits.ReplaceAllString(firstString(obj, "phone", "tel", "telefone", "cell", "celular"), "")
	document := nonDigits.ReplaceAllString(firstString(obj, "document", "doc", "cpf", "cnpj", "cpfCnpj", "cpf_cnpj"), "")

	var errs []string
	if name == "" {
		errs = append(errs, "Nome é obrigatório.")
	}
	if email != "" && !emailPattern.MatchString(email) {
		errs = append(errs, "E-mail inválido.")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, " ")})
		return
	}

	customer := store.Customer{Name: name}
	if email != "" {
		customer.Email = &email
	}
	if phone != "" {
		customer.Phone = &phone
	}
	if document != "" {
		customer.Document = &document
	}

	created, err := h.store.CreateCustomer(customer)
	if err == store.ErrDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe um cliente com esse documento ou e-mail."})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao criar cliente", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar cliente"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type customerUpdateRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Document     *string `json:"document"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	Notes        *string `json:"notes"`
}

// UpdateCustomer atualiza apenas os campos permitidos.
// PUT /api/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req customerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}

	updated, err := h.store.UpdateCustomer(c.Param("id"), store.CustomerPatch{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Document:     req.Document,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Notes:        req.Notes,
	})
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado."})
		return
	}
	if err == store.ErrDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe um cliente com esse documento ou e-mail."})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao atualizar cliente", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falha ao atualizar cliente."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCustomer exclui o cliente.
// DELETE /api/customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	err := h.store.DeleteCustomer(c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado."})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao excluir cliente", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falha ao excluir cliente."})
		return
	}
	c.Status(http.StatusNoContent)
}
