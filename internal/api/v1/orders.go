package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/document"
	"github.com/AngeloSouza1/ger-ped/internal/order"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// ListOrders lista os pedidos do mais recente para o mais antigo.
// GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	rows, err := h.store.ListOrders()
	if err != nil {
		h.logger.Error("Falha ao listar pedidos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar pedidos"})
		return
	}
	if rows == nil {
		rows = []store.Order{}
	}
	c.JSON(http.StatusOK, rows)
}

// GetOrder busca pedido por id, com cliente e itens.
// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	row, err := h.store.GetOrder(c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao buscar pedido", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pedido"})
		return
	}
	c.JSON(http.StatusOK, row)
}

type createOrderItemRequest struct {
	ProductID *string          `json:"productId"`
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	Quantity  order.FlexNumber `json:"quantity"`
	Qty       order.FlexNumber `json:"qty"`
	UnitPrice order.FlexNumber `json:"unitPrice"`
	Price     order.FlexNumber `json:"price"`
}

type createOrderRequest struct {
	CustomerID string                   `json:"customerId" binding:"required"`
	Notes      *string                  `json:"notes"`
	Items      []createOrderItemRequest `json:"items"`
}

// CreateOrder cria um pedido. Itens com productId resolvem nome, unidade e
// preço (especial do cliente, senão de tabela) a partir do cadastro; o preço
// enviado no item, quando presente, vence o resolvido.
// POST /api/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe ao menos um item."})
		return
	}
	if _, err := h.store.GetCustomer(req.CustomerID); err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	} else if err != nil {
		h.logger.Error("Falha ao buscar cliente", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pedido"})
		return
	}

	items := make([]order.RawOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		raw := order.RawOrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Price:     it.Price,
		}
		if it.ProductID != nil {
			p, err := h.store.GetProduct(*it.ProductID)
			if err == store.ErrNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Produto não encontrado: " + *it.ProductID})
				return
			}
			if err != nil {
				h.logger.Error("Falha ao buscar produto do item", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pedido"})
				return
			}
			price, err := h.store.EffectivePrice(req.CustomerID, p.ID)
			if err != nil && err != store.ErrNotFound {
				h.logger.Error("Falha ao resolver preço do item", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pedido"})
				return
			}
			raw.Product = &order.RawProduct{
				Name:  &p.Name,
				Unit:  &p.Unit,
				Price: order.FlexNumber{Value: price, Valid: err == nil, Present: err == nil},
			}
		}
		items = append(items, raw)
	}

	// Normaliza antes de persistir: quantidades e preços finitos e
	// não-negativos, nomes com fallback de cadastro.
	normalized := order.Normalize(order.RawOrder{Items: items})

	input := store.NewOrderInput{
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
		Items:      make([]store.OrderItem, 0, len(normalized.Items)),
	}
	for i, it := range normalized.Items {
		unit := it.Unit
		input.Items = append(input.Items, store.OrderItem{
			ProductID: req.Items[i].ProductID,
			Name:      it.Name,
			Unit:      &unit,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}

	created, err := h.store.CreateOrder(input)
	if err != nil {
		h.logger.Error("Falha ao criar pedido", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pedido"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PreviewOrder normaliza o pedido recebido (salvo ou rascunho) e devolve as
// quatro superfícies de documento: assunto, texto, HTML de e-mail e folha de
// impressão. Não toca o banco.
// POST /api/orders/preview
func (h *Handler) PreviewOrder(c *gin.Context) {
	var raw order.RawOrder
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	o := order.Normalize(raw)
	c.JSON(http.StatusOK, gin.H{
		"order":   o,
		"subject": document.Subject(o),
		"text":    document.PlainText(o),
		"html":    document.HTMLDocument(o),
		"sheet":   document.PrintableSheet(o, document.SheetOptions{SplitThreshold: h.cfg.PDF.SplitThreshold}),
	})
}

// rawFromStored converte a linha persistida para o formato de entrada da
// normalização, que é o único caminho até as superfícies de documento.
func rawFromStored(o store.Order) order.RawOrder {
	number := strconv.FormatInt(o.Number, 10)
	raw := order.RawOrder{
		ID:        &o.ID,
		Number:    order.FlexString{Value: number, Valid: true},
		Notes:     o.Notes,
		Total:     order.FlexNumber{Value: o.Total, Valid: true, Present: true},
		CreatedAt: order.FlexTime{Value: o.CreatedAt, Valid: !o.CreatedAt.IsZero()},
	}
	if o.Customer != nil {
		raw.Customer = &order.RawCustomer{
			ID:    &o.Customer.ID,
			Name:  &o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		}
	}
	for i := range o.Items {
		it := o.Items[i]
		raw.Items = append(raw.Items, order.RawOrderItem{
			ProductID: it.ProductID,
			Name:      &it.Name,
			Unit:      it.Unit,
			Quantity:  order.FlexNumber{Value: it.Quantity, Valid: true, Present: true},
			UnitPrice: order.FlexNumber{Value: it.UnitPrice, Valid: true, Present: true},
			Total:     order.FlexNumber{Value: it.Total, Valid: true, Present: true},
		})
	}
	return raw
}

// pdfFilename nome do anexo/download: pedido-<número>, senão pedido-<id>.
func pdfFilename(o order.Order) string {
	base := strings.TrimSpace(o.Number)
	if base == "" {
		base = o.ID
	}
	if base == "" {
		base = "pedido"
	}
	return "pedido-" + base + ".pdf"
}
