package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/config"
	"github.com/KromaEnergia/api-vendas/internal/logger"
	"github.com/KromaEnergia/api-vendas/internal/router"
	"github.com/KromaEnergia/api-vendas/internal/utils/db"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuração inválida")
	}
	l := logger.New(cfg.App.Env, cfg.App.LogLevel)

	conn, err := db.ConnectDataBase(cfg.DB)
	if err != nil {
		l.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("erro ao conectar no banco")
	}

	// AutoMigrate para todos os modelos
	if err := db.Migrate(conn); err != nil {
		l.Fatal().Err(err).Msg("erro no AutoMigrate")
	}

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		l.Fatal().Err(err).Str("dir", cfg.TempDir).Msg("erro ao criar diretório temporário")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router.New(conn, cfg, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("servidor encerrado com erro")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("falha no shutdown")
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	l.Info().Msg("servidor parado")
}
