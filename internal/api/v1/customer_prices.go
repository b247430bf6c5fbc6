package v1

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// ListCustomerPrices lista os preços especiais. Com customerId e productId na
// query devolve o preço efetivo resolvido (especial ou de tabela).
// GET /api/customer-prices
func (h *Handler) ListCustomerPrices(c *gin.Context) {
	customerID := c.Query("customerId")
	productID := c.Query("productId")
	if customerID != "" && productID != "" {
		price, err := h.store.EffectivePrice(customerID, productID)
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
			return
		}
		if err != nil {
			h.logger.Error("Falha ao resolver preço", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao resolver preço"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customerId": customerID, "productId": productID, "price": price})
		return
	}

	rows, err := h.store.ListCustomerPrices()
	if err != nil {
		h.logger.Error("Falha ao listar preços especiais", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar preços"})
		return
	}
	if rows == nil {
		rows = []store.CustomerPrice{}
	}
	c.JSON(http.StatusOK, rows)
}

type customerPriceRequest struct {
	CustomerID string  `json:"customerId" binding:"required"`
	ProductID  string  `json:"productId" binding:"required"`
	Price      float64 `json:"price"`
}

// UpsertCustomerPrice grava (cria ou substitui) o preço especial do par
// cliente/produto.
// PUT /api/customer-prices
func (h *Handler) UpsertCustomerPrice(c *gin.Context) {
	var req customerPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido."})
		return
	}
	if _, err := h.store.GetCustomer(req.CustomerID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}
	if _, err := h.store.GetProduct(req.ProductID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}

	err := h.store.UpsertCustomerPrice(store.CustomerPrice{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Price:      req.Price,
	})
	if err != nil {
		h.logger.Error("Falha ao gravar preço especial", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar preço"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteCustomerPrice remove o preço especial; o cliente volta a pagar o
// preço de tabela.
// DELETE /api/customer-prices?customerId=&productId=
func (h *Handler) DeleteCustomerPrice(c *gin.Context) {
	customerID := strings.TrimSpace(c.Query("customerId"))
	productID := strings.TrimSpace(c.Query("productId"))
	if customerID == "" || productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId e productId são obrigatórios"})
		return
	}
	err := h.store.DeleteCustomerPrice(customerID, productID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preço especial não encontrado"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao excluir preço especial", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir preço"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
