package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	BoardAPIURL       string
	BoardAPIToken     string
	BoardID           int64
	GroupName         string
	BoardRateLimitRPS int
	BoardTimeoutMs    int

	RowTypeColumnTitle string
	LoblawDateColumnID string
	LookbackWeeks      int
	SnapshotFilename   string

	WatchIntervalSec int
	WatchBatchLimit  int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		BoardAPIURL:       getEnv("BOARD_API_URL", "https://api.monday.com/v2"),
		BoardAPIToken:     getEnv("BOARD_API_TOKEN", ""),
		BoardID:           getEnvInt64("BOARD_ID", 18392325187),
		GroupName:         getEnv("BOARD_GROUP_NAME", "C3 Inbox"),
		BoardRateLimitRPS: getEnvInt("BOARD_RATE_LIMIT_RPS", 5),
		BoardTimeoutMs:    getEnvInt("BOARD_TIMEOUT_MS", 60000),

		RowTypeColumnTitle: getEnv("ROW_TYPE_COLUMN_TITLE", "Row Type"),
		LoblawDateColumnID: getEnv("LOBLAW_DATE_COLUMN_ID", "pulse_log_mkypz8ad"),
		LookbackWeeks:      getEnvInt("LOOKBACK_WEEKS", 2),
		SnapshotFilename:   getEnv("SNAPSHOT_FILENAME", "new_records.json"),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 60),
		WatchBatchLimit:  getEnvInt("WATCH_BATCH_LIMIT", 10),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
