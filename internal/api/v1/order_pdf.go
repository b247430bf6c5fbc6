package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/document"
	"github.com/AngeloSouza1/ger-ped/internal/order"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// OrderPDF gera o PDF da folha de impressão do pedido. O corpo pode trazer
// um pedido em formato livre (rascunho não salvo); sem corpo a linha
// persistida é usada.
// POST /api/orders/:id/pdf
func (h *Handler) OrderPDF(c *gin.Context) {
	raw, ok := h.resolveOrderInput(c)
	if !ok {
		return
	}
	o := order.Normalize(raw)

	html := document.PrintableSheet(o, document.SheetOptions{SplitThreshold: h.cfg.PDF.SplitThreshold})
	data, err := h.pdf.Render(c.Request.Context(), html)
	if err != nil {
		h.logger.Error("Falha ao gerar PDF", zap.String("order", o.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao gerar PDF"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdfFilename(o)+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// resolveOrderInput monta o RawOrder da requisição: corpo JSON quando
// enviado, senão a linha persistida apontada por :id. O id da rota sempre
// prevalece sobre o do corpo.
func (h *Handler) resolveOrderInput(c *gin.Context) (order.RawOrder, bool) {
	id := c.Param("id")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	trimmed := strings.TrimSpace(string(body))
	if err == nil && trimmed != "" && trimmed != "{}" && trimmed != "null" {
		var raw order.RawOrder
		if err := json.Unmarshal(body, &raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
			return order.RawOrder{}, false
		}
		raw.ID = &id
		return raw, true
	}

	stored, err := h.store.GetOrder(id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return order.RawOrder{}, false
	}
	if err != nil {
		h.logger.Error("Falha ao buscar pedido", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pedido"})
		return order.RawOrder{}, false
	}
	return rawFromStored(stored), true
}
