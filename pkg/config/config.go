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

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Scraper   ScraperConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	Jobs      JobsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the shared secret used to validate access tokens
// issued by the magic-link auth provider. The API never issues tokens
// itself.
type AuthConfig struct {
	JWTSecret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ScraperConfig tunes the per-platform scrapers.
type ScraperConfig struct {
	HTTPTimeout      time.Duration
	UserAgent        string
	DevfolioPages    int
	UnstopPages      int
	DevpostPages     int
	EventbriteEnable bool
	EventbritePages  int
	BrowserTimeout   time.Duration
}

// SchedulerConfig controls the periodic scrape cadence.
type SchedulerConfig struct {
	Enabled  bool
	CronSpec string
}

// CacheConfig governs query-page caching.
type CacheConfig struct {
	TTL time.Duration
}

// JobsConfig tunes the background scrape job dispatcher.
type JobsConfig struct {
	BufferSize int
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{JWTSecret: v.GetString("AUTH_JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scraper = ScraperConfig{
		HTTPTimeout:      parseDuration(v.GetString("SCRAPER_HTTP_TIMEOUT"), 20*time.Second),
		UserAgent:        v.GetString("SCRAPER_USER_AGENT"),
		DevfolioPages:    v.GetInt("SCRAPER_DEVFOLIO_PAGES"),
		UnstopPages:      v.GetInt("SCRAPER_UNSTOP_PAGES"),
		DevpostPages:     v.GetInt("SCRAPER_DEVPOST_PAGES"),
		EventbriteEnable: v.GetBool("SCRAPER_EVENTBRITE_ENABLED"),
		EventbritePages:  v.GetInt("SCRAPER_EVENTBRITE_PAGES"),
		BrowserTimeout:   parseDuration(v.GetString("SCRAPER_BROWSER_TIMEOUT"), 90*time.Second),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:  v.GetBool("SCHEDULER_ENABLED"),
		CronSpec: v.GetString("SCHEDULER_CRON"),
	}

	cfg.Cache = CacheConfig{
		TTL: parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.Jobs = JobsConfig{
		BufferSize: v.GetInt("JOBS_BUFFER_SIZE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "opportunex")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCRAPER_HTTP_TIMEOUT", "20s")
	v.SetDefault("SCRAPER_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64; rv:122.0) Gecko/20100101 Firefox/122.0")
	v.SetDefault("SCRAPER_DEVFOLIO_PAGES", 2)
	v.SetDefault("SCRAPER_UNSTOP_PAGES", 3)
	v.SetDefault("SCRAPER_DEVPOST_PAGES", 4)
	v.SetDefault("SCRAPER_EVENTBRITE_ENABLED", false)
	v.SetDefault("SCRAPER_EVENTBRITE_PAGES", 5)
	v.SetDefault("SCRAPER_BROWSER_TIMEOUT", "90s")

	v.SetDefault("SCHEDULER_ENABLED", false)
	// Minute 0 of 00:00, 06:00, 12:00 and 18:00 UTC.
	v.SetDefault("SCHEDULER_CRON", "0 0,6,12,18 * * *")

	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("JOBS_BUFFER_SIZE", 4)
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
