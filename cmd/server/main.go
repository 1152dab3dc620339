/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift-ledger server: configuration, the
  SQLite persistence adapter, the attendance store, the optional Gemini
  insight service, and the HTTP router with graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config (.env supported), apply flag overrides
  2. Open the SQLite document adapter
  3. Load the attendance store, quotas, and preferences from it
  4. Wire the insight service when GEMINI_API_KEY is set
  5. Serve until SIGINT/SIGTERM, then drain with a 30s timeout

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH; ":memory:" works)
*/
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftledger/attendance-engine/api"
	"github.com/shiftledger/attendance-engine/config"
	"github.com/shiftledger/attendance-engine/insights"
	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/prefs"
	"github.com/shiftledger/attendance-engine/quota"
	"github.com/shiftledger/attendance-engine/store"
	"github.com/shiftledger/attendance-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	adapter, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer adapter.Close()

	st := ledger.Open(adapter, logger)
	quotas := loadField(adapter, logger, store.FieldQuotas, quota.Default())
	p := loadPrefs(adapter, logger)

	var ins *insights.Service
	if cfg.GeminiAPIKey != "" {
		gen, err := insights.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("insight generator disabled", "error", err)
		} else {
			ins = insights.NewService(gen, logger)
		}
	}

	handler := api.NewHandler(st, quotas, p, adapter, ins, logger)
	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: api.NewRouter(handler),
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "db", *dbPath, "records", st.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

// loadField reads one document field, falling back to the default on a
// missing or malformed value.
func loadField[T any](adapter store.Adapter, logger *slog.Logger, field string, def T) T {
	v := def
	ok, err := adapter.Load(field, &v)
	if err != nil {
		logger.Warn("stored field unreadable, using defaults", "field", field, "error", err)
		return def
	}
	if !ok {
		return def
	}
	return v
}

// loadPrefs assembles preferences from their individually stored fields.
func loadPrefs(adapter store.Adapter, logger *slog.Logger) prefs.Prefs {
	def := prefs.Default()
	return prefs.Prefs{
		Colors:      loadField(adapter, logger, store.FieldColors, def.Colors),
		Timings:     loadField(adapter, logger, store.FieldTimings, def.Timings),
		Enabled:     loadField(adapter, logger, store.FieldEnabled, def.Enabled),
		DefaultView: loadField(adapter, logger, store.FieldView, def.DefaultView),
		DarkMode:    loadField(adapter, logger, store.FieldDarkMode, def.DarkMode),
	}
}
