package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-middleware/internal/config"
	"call-middleware/internal/httpapi"
	"call-middleware/internal/telephony"
	"call-middleware/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	callBot := telephony.NewCallBotClient(cfg.Upstream, nil)
	r := httpapi.NewRouter(log, callBot, logger.NewSlogEvents(log))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(cfg.Upstream),
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("middleware listening",
			"addr", srv.Addr,
			"env", cfg.App.Env,
			"upstream", cfg.Upstream.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// writeTimeout leaves room for the slowest upstream exchange plus the reply.
func writeTimeout(u config.UpstreamConfig) time.Duration {
	d := 30 * time.Second
	slowest := max(u.CallTimeout, u.ProbeTimeout) + 5*time.Second
	return max(d, slowest)
}
