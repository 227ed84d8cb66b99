// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// データソースの種類。
const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
	DataSourceBolt     = "bolt"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Storage
	DataSource       string
	DatabaseURL      string
	BoltPath         string
	DBConnectTimeout time.Duration

	// Generator
	DefaultSeed      uint32
	UserSeedPolicy   string
	UserSeed         uint32
	SeedOnStart      bool
	GeneratorProfile string
	LocationPolicy   string

	// Rate Limit（1クライアントあたり毎分のリクエスト数）
	RateLimitGeneral int
	RateLimitReload  int

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Logging
	LogLevel string
}

// LoadDotEnv は.envファイルがあれば環境変数に読み込む。
// 既に設定済みの環境変数は上書きしない。ファイルが存在しない場合は何もしない。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load は環境変数からConfigを読み込む。
// 値が不正な場合、postgres指定でDATABASE_URLが未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	cfg.DataSource = getEnvString("DATA_SOURCE", DataSourceMemory)
	switch cfg.DataSource {
	case DataSourceMemory, DataSourceBolt:
	case DataSourcePostgres:
		if os.Getenv("DATABASE_URL") == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DATA_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be one of memory, postgres, bolt: %q", cfg.DataSource))
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.BoltPath = getEnvString("BOLT_PATH", "frozenbet.db")
	cfg.DBConnectTimeout = getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second)

	var err error
	if cfg.DefaultSeed, err = getEnvSeed("DEFAULT_SEED", 42); err != nil {
		errs = append(errs, err)
	}
	if cfg.UserSeed, err = getEnvSeed("USER_SEED", 42); err != nil {
		errs = append(errs, err)
	}
	cfg.UserSeedPolicy = getEnvString("USER_SEED_POLICY", "independent")
	cfg.SeedOnStart = getEnvBool("SEED_ON_START", false)
	cfg.GeneratorProfile = os.Getenv("GENERATOR_PROFILE")
	cfg.LocationPolicy = os.Getenv("LOCATION_POLICY")

	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitReload = getEnvInt("RATE_LIMIT_RELOAD", 10)
	// 0以下だとバーストが0になり全リクエストが429になる
	if cfg.RateLimitGeneral <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_GENERAL must be positive, got %d", cfg.RateLimitGeneral))
	}
	if cfg.RateLimitReload <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RELOAD must be positive, got %d", cfg.RateLimitReload))
	}

	cfg.ServerPort = getEnvString("SERVER_PORT", "4001")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	cfg.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// UsesDatabase はPostgreSQLを使う設定かどうかを返す。
func (c *Config) UsesDatabase() bool {
	return c.DataSource == DataSourcePostgres
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// getEnvSeed はシードを読み込む。整数以外はエラー、負の値は下位32ビットに丸める。
func getEnvSeed(key string, defaultVal uint32) (uint32, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, v)
	}
	return uint32(i), nil
}

// getEnvList はカンマ区切りの値を空要素を除いて返す。
func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
