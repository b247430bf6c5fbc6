package v1

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// ListProducts lista produtos ativos.
// GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	rows, err := h.store.ListProducts()
	if err != nil {
		h.logger.Error("Falha ao listar produtos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar produtos"})
		return
	}
	if rows == nil {
		rows = []store.Product{}
	}
	c.JSON(http.StatusOK, rows)
}

// GetProduct busca produto por id.
// GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	row, err := h.store.GetProduct(c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao buscar produto", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar produto"})
		return
	}
	c.JSON(http.StatusOK, row)
}

type productCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         *string `json:"sku"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// CreateProduct cria produto.
// POST /api/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome inválido."})
		return
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) || req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido."})
		return
	}

	created, err := h.store.CreateProduct(store.Product{
		Name:        strings.TrimSpace(req.Name),
		SKU:         req.SKU,
		Unit:        strings.TrimSpace(req.Unit),
		Price:       req.Price,
		Description: req.Description,
	})
	if err == store.ErrDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "Conflito de unicidade."})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao criar produto", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar produto"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type productUpdateRequest struct {
	Name  *string  `json:"name"`
	Unit  *string  `json:"unit"`
	Price *float64 `json:"price"`
}

// UpdateProduct atualiza nome/unidade/preço.
// PUT /api/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}

	patch := store.ProductPatch{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome inválido."})
			return
		}
		patch.Name = &name
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unidade inválida."})
			return
		}
		patch.Unit = &unit
	}
	if req.Price != nil {
		if math.IsNaN(*req.Price) || math.IsInf(*req.Price, 0) || *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido."})
			return
		}
		patch.Price = req.Price
	}

	updated, err := h.store.UpdateProduct(c.Param("id"), patch)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	if err == store.ErrDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "Conflito de unicidade."})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao atualizar produto", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar produto"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct exclui (soft delete) o produto.
// DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	err := h.store.SoftDeleteProduct(c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao excluir produto", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar produto"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
