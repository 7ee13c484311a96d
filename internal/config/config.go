// Package config loads the deployment configuration from the environment,
// with optional .env support for local runs. A missing required value is a
// startup-time failure: the process must refuse to run degraded.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/tx0095/moneyflow-bot/internal/infra/gcs"
	"github.com/tx0095/moneyflow-bot/internal/ledger"
)

// Backend names a ledger store implementation.
const (
	BackendSheets   = "sheets"
	BackendBigQuery = "bigquery"
)

// Config is the full deployment configuration surface.
type Config struct {
	Port     string
	BotToken string

	LedgerBackend string
	Schema        ledger.Schema
	FormatRows    bool
	DateLayout    string

	CurrencyPrefix string

	SpreadsheetID string
	SheetName     string
	SheetID       int64

	BQProjectID string
	BQDataset   string
	BQTable     string

	CredentialsPath string

	NotionToken      string
	NotionDatabaseID string
}

// Load reads the configuration from the environment (and a .env file when
// present) and validates it.
func Load() (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "10000")
	v.SetDefault("LEDGER_BACKEND", BackendSheets)
	v.SetDefault("SCHEMA", string(ledger.SchemaBasic))
	v.SetDefault("FORMAT_ROWS", true)
	v.SetDefault("DATE_LAYOUT", "02/01/2006")
	v.SetDefault("CURRENCY_PREFIX", "Rp")
	v.SetDefault("SHEET_NAME", "Ledger")
	v.SetDefault("SHEET_ID", 0)
	v.SetDefault("BQ_DATASET", "finance")
	v.SetDefault("BQ_TABLE", "ledger")
	v.SetDefault("GOOGLE_CREDENTIALS_PATH", "credentials.json")

	cfg := &Config{
		Port:             v.GetString("PORT"),
		BotToken:         v.GetString("BOT_TOKEN"),
		LedgerBackend:    v.GetString("LEDGER_BACKEND"),
		Schema:           ledger.Schema(v.GetString("SCHEMA")),
		FormatRows:       v.GetBool("FORMAT_ROWS"),
		DateLayout:       v.GetString("DATE_LAYOUT"),
		CurrencyPrefix:   v.GetString("CURRENCY_PREFIX"),
		SpreadsheetID:    v.GetString("SPREADSHEET_ID"),
		SheetName:        v.GetString("SHEET_NAME"),
		SheetID:          v.GetInt64("SHEET_ID"),
		BQProjectID:      v.GetString("BQ_PROJECT_ID"),
		BQDataset:        v.GetString("BQ_DATASET"),
		BQTable:          v.GetString("BQ_TABLE"),
		CredentialsPath:  v.GetString("GOOGLE_CREDENTIALS_PATH"),
		NotionToken:      v.GetString("NOTION_TOKEN"),
		NotionDatabaseID: v.GetString("NOTION_DATABASE_ID"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value the selected backend needs is present.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("Validate: BOT_TOKEN is required")
	}
	if !c.Schema.Valid() {
		return fmt.Errorf("Validate: unknown schema %q (want %q or %q)", c.Schema, ledger.SchemaBasic, ledger.SchemaExtended)
	}

	switch c.LedgerBackend {
	case BackendSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("Validate: SPREADSHEET_ID is required for the sheets backend")
		}
		if c.SheetName == "" {
			return fmt.Errorf("Validate: SHEET_NAME is required for the sheets backend")
		}
	case BackendBigQuery:
		if c.BQProjectID == "" {
			return fmt.Errorf("Validate: BQ_PROJECT_ID is required for the bigquery backend")
		}
	default:
		return fmt.Errorf("Validate: unknown ledger backend %q", c.LedgerBackend)
	}

	if (c.NotionToken == "") != (c.NotionDatabaseID == "") {
		return fmt.Errorf("Validate: NOTION_TOKEN and NOTION_DATABASE_ID must be set together")
	}

	return nil
}

// MirrorEnabled reports whether the Notion mirror is configured.
func (c *Config) MirrorEnabled() bool {
	return c.NotionToken != "" && c.NotionDatabaseID != ""
}

// CredentialsJSON loads the service-account key, from GCS when the configured
// path is a gs:// URI, from disk otherwise.
func (c *Config) CredentialsJSON(ctx context.Context) ([]byte, error) {
	if gcs.IsURI(c.CredentialsPath) {
		data, err := gcs.FetchObject(ctx, c.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("CredentialsJSON: fetching %s: %w", c.CredentialsPath, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(c.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("CredentialsJSON: reading %s: %w", c.CredentialsPath, err)
	}
	return data, nil
}
