package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tx0095/moneyflow-bot/internal/api/middleware"
	"github.com/tx0095/moneyflow-bot/internal/bot"
	"github.com/tx0095/moneyflow-bot/internal/config"
	infraBQ "github.com/tx0095/moneyflow-bot/internal/infra/bigquery"
	infraSheets "github.com/tx0095/moneyflow-bot/internal/infra/sheets"
	"github.com/tx0095/moneyflow-bot/internal/ledger"
	"github.com/tx0095/moneyflow-bot/internal/logger"
	"github.com/tx0095/moneyflow-bot/internal/notionmirror"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	writer, closeStore, err := buildWriter(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger store")
	}
	defer closeStore()

	var mirror bot.RowMirror
	if cfg.MirrorEnabled() {
		mirror = notionmirror.New(cfg.NotionToken, cfg.NotionDatabaseID)
		log.Info().Msg("Notion mirror enabled")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	handler := bot.NewHandler(api, writer, mirror, cfg.CurrencyPrefix, log)
	b := bot.New(api, handler, log)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go b.Run(runCtx)

	server := newHealthServer(cfg.Port, log)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting liveness server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start liveness server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Liveness server forced to shutdown")
	}

	log.Info().Msg("Bot exited")
}

// buildWriter wires the configured ledger backend into a Writer. The returned
// close function releases backend resources on shutdown.
func buildWriter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ledger.Writer, func(), error) {
	creds, err := cfg.CredentialsJSON(ctx)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.LedgerBackend {
	case config.BackendBigQuery:
		store, err := infraBQ.New(ctx, cfg.BQProjectID, cfg.BQDataset, cfg.BQTable, cfg.Schema,
			option.WithCredentialsJSON(creds))
		if err != nil {
			return nil, nil, err
		}
		writer := ledger.NewWriter(ledger.WriterConfig{
			Store:      store,
			Schema:     cfg.Schema,
			DateLayout: cfg.DateLayout,
			Logger:     log,
		})
		return writer, func() { _ = store.Close() }, nil

	default:
		store, err := infraSheets.New(ctx, cfg.SpreadsheetID, cfg.SheetName, cfg.SheetID, cfg.Schema.Width(),
			option.WithCredentialsJSON(creds),
			option.WithScopes(sheetsapi.SpreadsheetsScope))
		if err != nil {
			return nil, nil, err
		}

		var formatter ledger.RowFormatter
		if cfg.FormatRows {
			formatter = store
		}
		writer := ledger.NewWriter(ledger.WriterConfig{
			Store:      store,
			Formatter:  formatter,
			Schema:     cfg.Schema,
			DateLayout: cfg.DateLayout,
			Logger:     log,
		})
		return writer, func() {}, nil
	}
}

func newHealthServer(port string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(mux),
		),
	)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
