package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tx0095/moneyflow-bot/internal/config"
	infraBQ "github.com/tx0095/moneyflow-bot/internal/infra/bigquery"
	infraSheets "github.com/tx0095/moneyflow-bot/internal/infra/sheets"
	"github.com/tx0095/moneyflow-bot/internal/ledger"
	"github.com/tx0095/moneyflow-bot/internal/logger"
	"github.com/tx0095/moneyflow-bot/internal/parser"
	"github.com/tx0095/moneyflow-bot/internal/reply"
)

// Operator CLI: records one transaction message without going through
// Telegram. Useful for backfilling rows and for checking a deployment's
// credentials and ranges.
func main() {
	log := logger.New()

	text := flag.String("text", "", "transaction message, e.g. \"beli beras 1200\"")
	flag.Parse()
	if *text == "" && flag.NArg() > 0 {
		*text = strings.Join(flag.Args(), " ")
	}
	if *text == "" {
		log.Fatal().Msg("Error: --text is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	rec, err := parser.Parse(*text)
	if err != nil {
		log.Fatal().Err(err).Str("text", *text).Msg("Message is not a transaction")
	}

	writer, closeStore, err := buildWriter(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger store")
	}
	defer closeStore()

	handle, err := writer.Write(ctx, rec)
	if err != nil {
		log.Fatal().Err(err).Msg("Ledger write failed")
	}

	log.Info().
		Str("updated_range", handle.UpdatedRange).
		Int64("row_index", handle.RowIndex).
		Msg("Transaction recorded")
	fmt.Println(reply.Confirmation(rec, cfg.CurrencyPrefix))
}

// buildWriter mirrors the service binary's backend wiring.
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
