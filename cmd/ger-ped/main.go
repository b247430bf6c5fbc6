package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AngeloSouza1/ger-ped/internal/config"
	"github.com/AngeloSouza1/ger-ped/internal/server"
)

var (
	port    = flag.Int("port", 0, "porta do servidor (sobrepõe config.toml)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento")
	dataDir = flag.String("dataDir", "", "diretório de dados (sobrepõe config.toml)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Falha ao carregar config, usando defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Server.DevMode {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Falha ao criar logger: %v", err)
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao montar servidor", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Servidor caiu", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Encerrando", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Encerramento com erro", zap.Error(err))
		}
	}
}
