// Package server monta o servidor HTTP: store, sessões, renderizador de PDF
// e transporte de e-mail ligados às rotas da API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/AngeloSouza1/ger-ped/internal/api/v1"
	"github.com/AngeloSouza1/ger-ped/internal/auth"
	"github.com/AngeloSouza1/ger-ped/internal/config"
	"github.com/AngeloSouza1/ger-ped/internal/mailer"
	"github.com/AngeloSouza1/ger-ped/internal/pdf"
	"github.com/AngeloSouza1/ger-ped/internal/store"
)

// Server servidor HTTP da aplicação.
type Server struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *store.Store
	logger *zap.Logger
	httpd  *http.Server
}

// New monta o servidor: abre o banco, roda o seed e registra as rotas.
func New(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("preparar diretório de dados: %w", err)
	}

	st, err := store.New(filepath.Join(dataDir, "pedidos.db"))
	if err != nil {
		return nil, fmt.Errorf("abrir banco: %w", err)
	}

	if err := st.Seed(store.SeedOptions{
		AdminEmail:    cfg.Auth.SeedEmail,
		AdminPassword: cfg.Auth.SeedPassword,
		AdminName:     cfg.Auth.SeedName,
		SampleData:    cfg.Server.DevMode,
	}); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("seed inicial: %w", err)
	}

	sessions := auth.NewManager(cfg.Auth.Secret, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour)
	renderer := pdf.NewChromeRenderer(cfg.PDF.ChromePath, time.Duration(cfg.PDF.TimeoutSeconds)*time.Second, logger)
	sender := mailer.NewSMTPSender(cfg.Mail, logger)

	handler := v1.NewHandler(st, cfg, sessions, renderer, sender, filepath.Join(dataDir, "exports"), logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api")
	handler.RegisterRoutes(api)

	return &Server{
		cfg:    cfg,
		router: router,
		store:  st,
		logger: logger,
	}, nil
}

// Run bloqueia servindo HTTP na porta configurada até Shutdown.
func (s *Server) Run() error {
	s.httpd = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Servidor ouvindo", zap.Int("port", s.cfg.Server.Port))
	if err := s.httpd.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown encerra o HTTP com carência e fecha o banco.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.httpd != nil {
		if err := s.httpd.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Store expõe o store (usado em testes).
func (s *Server) Store() *store.Store {
	return s.store
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
