package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	AppVersion = "v1.2.0"
	AppPort    = "3000"
	AppDebug   = false

	PathStorages  = "storages"
	PathSchedules = "storages/schedules"
	PathExports   = "exports"

	HistoryDBPath = "storages/history.db"

	// Polling dispatcher
	DispatcherInterval = 60 * time.Second
	UploadTimeout      = 30 * time.Second

	// Token cache
	TokenCacheTTL = 50 * time.Minute

	// CSV loader
	CSVComma = ','
)

func init() {
	if v := strings.TrimSpace(os.Getenv("APP_PORT")); v != "" {
		AppPort = v
	}
	if v := os.Getenv("APP_DEBUG"); v == "true" || v == "1" || v == "on" {
		AppDebug = true
	}
	if v := strings.TrimSpace(os.Getenv("PATH_STORAGES")); v != "" {
		PathStorages = v
		PathSchedules = v + "/schedules"
		HistoryDBPath = v + "/history.db"
	}
	if v := strings.TrimSpace(os.Getenv("PATH_SCHEDULES")); v != "" {
		PathSchedules = v
	}
	if v := strings.TrimSpace(os.Getenv("PATH_EXPORTS")); v != "" {
		PathExports = v
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_DB_PATH")); v != "" {
		HistoryDBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DISPATCHER_INTERVAL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			DispatcherInterval = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("UPLOAD_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			UploadTimeout = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("TOKEN_CACHE_TTL_MINUTES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			TokenCacheTTL = time.Duration(n) * time.Minute
		}
	}
}
