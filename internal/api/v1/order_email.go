package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/document"
	"github.com/AngeloSouza1/ger-ped/internal/mailer"
	"github.com/AngeloSouza1/ger-ped/internal/order"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

type emailOrderRequest struct {
	To        string          `json:"to"`
	Subject   string          `json:"subject"`
	Order     *order.RawOrder `json:"order"`
	AttachPDF bool            `json:"attachPdf"`
}

// EmailOrder envia o pedido por e-mail: texto e HTML como alternativas e,
// quando pedido, o PDF da folha de impressão em anexo. Destinatário: campo
// "to", senão o e-mail do cliente, senão o próprio remetente configurado
// (cópia de arquivo).
// POST /api/orders/:id/email
func (h *Handler) EmailOrder(c *gin.Context) {
	// Corpo vazio é válido: envia a linha persistida como está.
	var req emailOrderRequest
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
		return
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payload inválido"})
			return
		}
	}

	// O pedido da rota precisa existir mesmo quando o corpo traz um
	// rascunho por cima.
	stored, err := h.store.GetOrder(c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao buscar pedido", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pedido"})
		return
	}

	var raw order.RawOrder
	if req.Order != nil {
		raw = *req.Order
		raw.ID = &stored.ID
	} else {
		raw = rawFromStored(stored)
	}
	o := order.Normalize(raw)

	to := strings.TrimSpace(req.To)
	if to == "" && o.Customer != nil {
		to = strings.TrimSpace(o.Customer.Email)
	}
	if to == "" {
		to = h.cfg.Mail.From
	}
	if to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destinatário não informado e cliente sem e-mail."})
		return
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = document.Subject(o)
	}

	// Todas as superfícies são montadas antes de tocar o transporte: uma
	// falha de render nunca deixa e-mail pela metade.
	msg := mailer.Message{
		To:      []string{to},
		Subject: subject,
		Text:    document.PlainText(o),
		HTML:    document.HTMLDocument(o),
	}

	if req.AttachPDF {
		sheet := document.PrintableSheet(o, document.SheetOptions{SplitThreshold: h.cfg.PDF.SplitThreshold})
		data, err := h.pdf.Render(c.Request.Context(), sheet)
		if err != nil {
			h.logger.Error("Falha ao gerar PDF do anexo", zap.String("order", o.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao gerar PDF"})
			return
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Filename:    pdfFilename(o),
			Content:     data,
			ContentType: "application/pdf",
		})
	}

	if err := h.mail.Send(c.Request.Context(), msg); err != nil {
		h.logger.Error("Falha ao enviar e-mail", zap.String("order", o.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erro ao enviar e-mail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "to": to})
}
