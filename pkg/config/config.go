package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Search       SearchConfig
	Verification VerificationConfig
	Timeline     TimelineConfig
	Exports      ExportsConfig
}

type DatabaseConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	StatementTimeout time.Duration
}

type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	Namespace   string
	DialTimeout time.Duration
	ReadTimeout time.Duration
	PoolSize    int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SearchConfig governs program search caching. FlushOnStart drops cached searches at boot,
// for deploys that follow a catalog import.
type SearchConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	FlushOnStart bool
}

// VerificationConfig controls how program verification timestamps age.
type VerificationConfig struct {
	WindowMonths int
}

// TimelineConfig tunes the preparation timeline scheduler.
type TimelineConfig struct {
	TotalWeeks             int
	TranslationBufferDays  int
	NotarizationBufferDays int
	DefaultDocumentDays    int
	CriticalRatio          float64
	DefaultIntake          string
}

// ExportsConfig toggles checklist/timeline file exports.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:             v.GetString("DB_HOST"),
		Port:             v.GetInt("DB_PORT"),
		User:             v.GetString("DB_USER"),
		Password:         v.GetString("DB_PASSWORD"),
		Name:             v.GetString("DB_NAME"),
		SSLMode:          v.GetString("DB_SSL_MODE"),
		MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
	}

	cfg.Redis = RedisConfig{
		Host:        v.GetString("REDIS_HOST"),
		Port:        v.GetInt("REDIS_PORT"),
		Password:    v.GetString("REDIS_PASSWORD"),
		DB:          v.GetInt("REDIS_DB"),
		Namespace:   v.GetString("REDIS_NAMESPACE"),
		DialTimeout: v.GetDuration("REDIS_DIAL_TIMEOUT"),
		ReadTimeout: v.GetDuration("REDIS_READ_TIMEOUT"),
		PoolSize:    v.GetInt("REDIS_POOL_SIZE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Search = SearchConfig{
		CacheEnabled: v.GetBool("ENABLE_SEARCH_CACHE"),
		CacheTTL:     parseDuration(v.GetString("SEARCH_CACHE_TTL"), 10*time.Minute),
		FlushOnStart: v.GetBool("SEARCH_CACHE_FLUSH_ON_START"),
	}

	cfg.Verification = VerificationConfig{
		WindowMonths: positiveOr(v.GetInt("VERIFICATION_WINDOW_MONTHS"), 6),
	}

	totalWeeks := v.GetInt("TIMELINE_TOTAL_WEEKS")
	if totalWeeks < 8 {
		totalWeeks = 8
	}
	ratio := v.GetFloat64("TIMELINE_CRITICAL_RATIO")
	if ratio <= 0 || ratio > 1 {
		ratio = 0.7
	}
	cfg.Timeline = TimelineConfig{
		TotalWeeks:             totalWeeks,
		TranslationBufferDays:  positiveOr(v.GetInt("TIMELINE_TRANSLATION_BUFFER_DAYS"), 7),
		NotarizationBufferDays: positiveOr(v.GetInt("TIMELINE_NOTARIZATION_BUFFER_DAYS"), 5),
		DefaultDocumentDays:    positiveOr(v.GetInt("TIMELINE_DEFAULT_DOCUMENT_DAYS"), 7),
		CriticalRatio:          ratio,
		DefaultIntake:          strings.TrimSpace(v.GetString("TIMELINE_DEFAULT_INTAKE")),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "admission_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_STATEMENT_TIMEOUT", "5s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_NAMESPACE", "admission-planner")
	v.SetDefault("REDIS_DIAL_TIMEOUT", "2s")
	v.SetDefault("REDIS_READ_TIMEOUT", "500ms")
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SEARCH_CACHE", false)
	v.SetDefault("SEARCH_CACHE_TTL", "10m")
	v.SetDefault("SEARCH_CACHE_FLUSH_ON_START", false)
	v.SetDefault("VERIFICATION_WINDOW_MONTHS", 6)

	v.SetDefault("TIMELINE_TOTAL_WEEKS", 8)
	v.SetDefault("TIMELINE_TRANSLATION_BUFFER_DAYS", 7)
	v.SetDefault("TIMELINE_NOTARIZATION_BUFFER_DAYS", 5)
	v.SetDefault("TIMELINE_DEFAULT_DOCUMENT_DAYS", 7)
	v.SetDefault("TIMELINE_CRITICAL_RATIO", 0.7)
	v.SetDefault("TIMELINE_DEFAULT_INTAKE", "September")

	v.SetDefault("ENABLE_EXPORTS", true)
}

// isMissingFile reports whether viper failed because .env does not exist. SetConfigFile
// bypasses the search path, so viper surfaces the raw fs error instead of ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
