package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tx0095/moneyflow-bot/internal/ledger"
)

func validSheetsConfig() *Config {
	return &Config{
		Port:          "10000",
		BotToken:      "123:abc",
		LedgerBackend: BackendSheets,
		Schema:        ledger.SchemaBasic,
		SpreadsheetID: "spreadsheet-id",
		SheetName:     "Ledger",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sheets config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid bigquery config",
			mutate: func(c *Config) {
				c.LedgerBackend = BackendBigQuery
				c.SpreadsheetID = ""
				c.BQProjectID = "my-project"
			},
		},
		{
			name:    "missing bot token",
			mutate:  func(c *Config) { c.BotToken = "" },
			wantErr: "BOT_TOKEN",
		},
		{
			name:    "missing spreadsheet id",
			mutate:  func(c *Config) { c.SpreadsheetID = "" },
			wantErr: "SPREADSHEET_ID",
		},
		{
			name:    "missing sheet name",
			mutate:  func(c *Config) { c.SheetName = "" },
			wantErr: "SHEET_NAME",
		},
		{
			name: "missing bigquery project",
			mutate: func(c *Config) {
				c.LedgerBackend = BackendBigQuery
			},
			wantErr: "BQ_PROJECT_ID",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.LedgerBackend = "dynamodb" },
			wantErr: "unknown ledger backend",
		},
		{
			name:    "unknown schema",
			mutate:  func(c *Config) { c.Schema = "wide" },
			wantErr: "unknown schema",
		},
		{
			name:    "notion token without database",
			mutate:  func(c *Config) { c.NotionToken = "secret" },
			wantErr: "NOTION_TOKEN and NOTION_DATABASE_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validSheetsConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMirrorEnabled(t *testing.T) {
	cfg := validSheetsConfig()
	if cfg.MirrorEnabled() {
		t.Error("mirror enabled without notion config")
	}

	cfg.NotionToken = "secret"
	cfg.NotionDatabaseID = "db"
	if !cfg.MirrorEnabled() {
		t.Error("mirror disabled despite full notion config")
	}
}

func TestCredentialsJSON_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := validSheetsConfig()
	cfg.CredentialsPath = path

	data, err := cfg.CredentialsJSON(context.Background())
	if err != nil {
		t.Fatalf("CredentialsJSON returned error: %v", err)
	}
	if !strings.Contains(string(data), "service_account") {
		t.Errorf("unexpected credentials content: %s", data)
	}
}

func TestCredentialsJSON_MissingFile(t *testing.T) {
	cfg := validSheetsConfig()
	cfg.CredentialsPath = filepath.Join(t.TempDir(), "missing.json")

	if _, err := cfg.CredentialsJSON(context.Background()); err == nil {
		t.Error("expected error for missing credentials file")
	}
}
