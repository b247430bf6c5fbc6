package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/auth"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login valida as credenciais e grava o cookie de sessão.
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credenciais ausentes"})
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err == store.ErrNotFound || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos"})
		return
	}
	if err != nil {
		h.logger.Error("Falha ao buscar usuário no login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao autenticar"})
		return
	}

	token, err := h.sessions.Sign(user.Email)
	if err != nil {
		h.logger.Error("Falha ao assinar sessão", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao autenticar"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout expira o cookie de sessão.
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me devolve a sessão corrente.
// GET /api/me
func (h *Handler) Me(c *gin.Context) {
	v, _ := c.Get("session")
	session, ok := v.(auth.Session)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": session.Email, "role": session.Role})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Auth.CookieName,
		token,
		maxAge,
		"/",
		h.cfg.Auth.CookieDomain,
		!h.cfg.Server.DevMode,
		true,
	)
}
