// File path: cmd/opsboard/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"opsboard/internal/api"
	"opsboard/internal/common"
	"opsboard/internal/digest"
	"opsboard/internal/importer"
	"opsboard/internal/store"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("opsboard: .env file not loaded", "error", err)
	} else {
		logger.Info("opsboard: environment loaded from .env")
	}

	addrDefault := ":8080"
	if env := strings.TrimSpace(os.Getenv("OPSBOARD_ADDR")); env != "" {
		addrDefault = env
	}
	addr := flag.String("addr", addrDefault, "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	digestSchedule := flag.String("digest-schedule", "", "cron expression for the renewal digest (empty uses OPSBOARD_DIGEST_SCHEDULE or the default)")
	flag.Parse()

	logger.Info("opsboard: startup initiated", "addr", *addr, "db", *dbPath)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("opsboard: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	aliasCfg, err := importer.LoadAliasConfig()
	if err != nil {
		logger.Error("opsboard: alias config load failed", "error", err)
		fmt.Println("alias config error:", err)
		os.Exit(1)
	}
	engine := importer.NewEngine(
		importer.WithAliases(aliasCfg.Merge(importer.DefaultAliases())),
		importer.WithCustomerColumns(aliasCfg.MergeCustomerColumns(importer.DefaultCustomerColumns())),
	)

	digestCfg := digest.LoadConfig()
	if trimmed := strings.TrimSpace(*digestSchedule); trimmed != "" {
		digestCfg.Schedule = trimmed
	}
	dig := digest.New(st)
	if err := dig.Start(digestCfg); err != nil {
		logger.Error("opsboard: digest schedule invalid", "schedule", digestCfg.Schedule, "error", err)
		fmt.Println("digest error:", err)
		os.Exit(1)
	}
	defer dig.Stop()

	server := api.NewServer(st, engine, nil)
	httpServer := &http.Server{Addr: *addr, Handler: server}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		logger.Info("opsboard: shutdown requested")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("opsboard: shutdown failed", "error", err)
		}
	}()

	logger.Info("opsboard: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("opsboard: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
	logger.Info("opsboard: server stopped")
}

func defaultDBPath() string {
	if env := strings.TrimSpace(os.Getenv("OPSBOARD_DB_PATH")); env != "" {
		return env
	}
	return filepath.Join("data", "opsboard.db")
}
