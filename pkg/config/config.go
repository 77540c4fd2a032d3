package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External sources
	Naver NaverConfig
	KRX   KRXConfig

	// Batch pipeline
	Collect  CollectConfig
	Analysis AnalysisConfig
	Report   ReportConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// NaverConfig holds Naver Finance configuration
type NaverConfig struct {
	BaseURL       string // finance.naver.com
	MobileBaseURL string // m.stock.naver.com
}

// KRXConfig holds KRX listing configuration
type KRXConfig struct {
	ListingURL string
}

// CollectConfig holds daily flow collection parameters
type CollectConfig struct {
	PageSize     int           // 수집 일수 (trend API pageSize)
	RequestDelay time.Duration // 종목 간 최소 요청 간격
	UniverseSize int           // 시가총액 상위 N 종목
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Dir   string // .xlsx output directory; empty disables workbook output
	Excel bool
}

// AnalysisConfig holds trend analysis parameters
type AnalysisConfig struct {
	Window            int // 분석 윈도우 (일)
	FavoritesLookback int // 관심종목 집계 기간 (일)
	FavoritesMinScore int // 관심종목 최소 수급 점수
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8097"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Naver: NaverConfig{
			BaseURL:       getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
			MobileBaseURL: getEnv("NAVER_MOBILE_BASE_URL", "https://m.stock.naver.com"),
		},

		KRX: KRXConfig{
			ListingURL: getEnv("KRX_LISTING_URL", "https://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13"),
		},

		Collect: CollectConfig{
			PageSize:     getEnvAsInt("COLLECT_PAGE_SIZE", 60),
			RequestDelay: getEnvAsDuration("COLLECT_REQUEST_DELAY", "500ms"),
			UniverseSize: getEnvAsInt("COLLECT_UNIVERSE_SIZE", 700),
		},

		Analysis: AnalysisConfig{
			Window:            getEnvAsInt("ANALYSIS_WINDOW", 20),
			FavoritesLookback: getEnvAsInt("FAVORITES_LOOKBACK_DAYS", 5),
			FavoritesMinScore: getEnvAsInt("FAVORITES_MIN_SCORE", 60),
		},

		Report: ReportConfig{
			Dir:   getEnv("REPORT_DIR", "reports"),
			Excel: getEnvAsBool("REPORT_EXCEL", true),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Collect.PageSize <= 0 {
		return fmt.Errorf("COLLECT_PAGE_SIZE must be positive")
	}

	if c.Analysis.Window <= 0 {
		return fmt.Errorf("ANALYSIS_WINDOW must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
