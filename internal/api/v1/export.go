package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/service/excel"
)

// ExportOrders gera a planilha de pedidos e devolve um token de download de
// uso único com validade curta.
// POST /api/orders/export
func (h *Handler) ExportOrders(c *gin.Context) {
	orders, err := h.store.ListOrders()
	if err != nil {
		h.logger.Error("Falha ao listar pedidos para exportação", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao exportar pedidos"})
		return
	}

	file, err := excel.NewExporter().Export(orders)
	if err != nil {
		h.logger.Error("Falha ao montar planilha", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao exportar pedidos"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("pedidos-%s.xlsx", time.Now().Format("2006-01-02"))
	tempPath := filepath.Join(h.exportsDir, fmt.Sprintf("export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		h.logger.Error("Falha ao gravar planilha", zap.Error(err))
		_ = os.Remove(tempPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gravar planilha"})
		return
	}

	token := h.downloads.put(tempPath, filename, 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/orders/export/download/" + token,
		"filename":    filename,
		"count":       len(orders),
	})
}

// DownloadExport serve a planilha exportada (uso único).
// GET /api/orders/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token ausente"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link de download expirado"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "Arquivo de exportação não encontrado"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
