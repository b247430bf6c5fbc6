// Package v1 expõe a API HTTP da aplicação: autenticação, cadastros,
// pedidos e as saídas de documento (preview, PDF, e-mail, planilha).
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/auth"
	"github.com/AngeloSouza1/ger-ped/internal/config"
	"github.com/AngeloSouza1/ger-ped/internal/mailer"
	"github.com/AngeloSouza1/ger-ped/internal/pdf"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// Handler processador da API v1.
type Handler struct {
	store      *store.Store
	cfg        *config.AppConfig
	sessions   *auth.Manager
	pdf        pdf.Renderer
	mail       mailer.Sender
	logger     *zap.Logger
	downloads  *exportDownloadStore
	exportsDir string
}

// NewHandler cria o processador da API.
func NewHandler(st *store.Store, cfg *config.AppConfig, sessions *auth.Manager,
	renderer pdf.Renderer, sender mailer.Sender, exportsDir string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:      st,
		cfg:        cfg,
		sessions:   sessions,
		pdf:        renderer,
		mail:       sender,
		logger:     logger,
		downloads:  newExportDownloadStore(),
		exportsDir: exportsDir,
	}
}

// RegisterRoutes registra as rotas da API.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Autenticação (login/logout fora do gate)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	authed := router.Group("", h.RequireAuth)
	authed.GET("/me", h.Me)

	// Clientes
	authed.GET("/customers", h.ListCustomers)
	authed.POST("/customers", h.CreateCustomer)
	authed.PUT("/customers/:id", h.UpdateCustomer)
	authed.DELETE("/customers/:id", h.DeleteCustomer)

	// Produtos
	authed.GET("/products", h.ListProducts)
	authed.POST("/products", h.CreateProduct)
	authed.GET("/products/:id", h.GetProduct)
	authed.PUT("/products/:id", h.UpdateProduct)
	authed.DELETE("/products/:id", h.DeleteProduct)

	// Preços por cliente
	authed.GET("/customer-prices", h.ListCustomerPrices)
	authed.PUT("/customer-prices", h.UpsertCustomerPrice)
	authed.DELETE("/customer-prices", h.DeleteCustomerPrice)

	// Pedidos
	authed.GET("/orders", h.ListOrders)
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders/:id", h.GetOrder)
	authed.POST("/orders/preview", h.PreviewOrder)
	authed.POST("/orders/export", h.ExportOrders)
	authed.GET("/orders/export/download/:token", h.DownloadExport)
	authed.POST("/orders/:id/pdf", h.OrderPDF)
	authed.POST("/orders/:id/email", h.EmailOrder)
}

// RequireAuth exige o cookie de sessão válido; sem ele a requisição morre
// com 401.
func (h *Handler) RequireAuth(c *gin.Context) {
	token, err := c.Cookie(h.cfg.Auth.CookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}
	session, err := h.sessions.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sessão inválida ou expirada"})
		return
	}
	c.Set("session", session)
	c.Next()
}
