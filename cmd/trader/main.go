package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kalhintz/opinion-auto-trade/internal/config"
	"github.com/kalhintz/opinion-auto-trade/internal/controlplane/server"
	"github.com/kalhintz/opinion-auto-trade/internal/events"
	"github.com/kalhintz/opinion-auto-trade/internal/executor"
	"github.com/kalhintz/opinion-auto-trade/opinion/client"
	"github.com/kalhintz/opinion-auto-trade/opinion/signing"
	"github.com/kalhintz/opinion-auto-trade/pkg/logger"
	"github.com/kalhintz/opinion-auto-trade/pkg/shutdown"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	configFile := flag.String("config", os.Getenv("TRADER_CONFIG"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	privateKey, err := signing.PrivateKeyFromHex(cfg.PrivateKey)
	if err != nil {
		log.Fatalf("parse PRIVATE_KEY failed: %v", err)
	}
	if err := signing.VerifySigner(privateKey, cfg.SignerAddress); err != nil {
		log.Fatalf("signer check failed: %v", err)
	}

	runtime := config.NewRuntime(cfg)
	venue := client.NewClient(cfg.Host, runtime)
	bus := events.NewBus()
	exec := executor.New(venue, runtime, bus, privateKey, cfg.SignerAddress, cfg.MakerAddress)

	srv := server.New(cfg, runtime, venue, exec, bus)
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sd := shutdown.NewManager()
	sd.OnShutdown(func(ctx context.Context) {
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warnf("http server shutdown: %v", err)
		}
	})

	go func() {
		logger.Infof("trader control plane listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sd.Shutdown(ctx)

	fmt.Println("trader stopped")
}
