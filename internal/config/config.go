package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Objects   ObjectsConfig
	Mapbox    MapboxConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins string
	// ProxyHeader - заголовок с IP клиента за reverse proxy, например X-Forwarded-For
	ProxyHeader    string
	TrustedProxies []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	DictionaryCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// AuthConfig - настройки JWT и сессий
type AuthConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	SessionTTL         time.Duration
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}

type RateLimitConfig struct {
	LoginMax    int
	LoginWindow time.Duration
	APIMax      int
	APIWindow   time.Duration
}

// ObjectsConfig - политики для объектов инфраструктуры
type ObjectsConfig struct {
	// RequirePublishedOnUpdate включает проверку "хотя бы один опубликованный перевод" при обновлении
	RequirePublishedOnUpdate bool
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	Country        string
	RequestTimeout int // seconds
}

type WorkerConfig struct {
	GeocodingEnabled       bool
	ConsumerGroup          string
	MaxRetries             int
	SessionCleanupEnabled  bool
	SessionCleanupInterval time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env необязателен, переменные окружения имеют приоритет
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           viper.GetString("API_HOST"),
			Port:           viper.GetInt("API_PORT"),
			Env:            viper.GetString("API_ENV"),
			AllowedOrigins: viper.GetString("API_ALLOWED_ORIGINS"),
			ProxyHeader:    viper.GetString("API_PROXY_HEADER"),
			TrustedProxies: splitList(viper.GetString("API_TRUSTED_PROXIES")),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			DictionaryCacheTTL: time.Duration(viper.GetInt("DICTIONARY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Auth: AuthConfig{
			AccessSecret:       viper.GetString("JWT_SECRET"),
			RefreshSecret:      viper.GetString("JWT_REFRESH_SECRET"),
			AccessTTL:          viper.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL:         viper.GetDuration("JWT_REFRESH_TTL"),
			SessionTTL:         viper.GetDuration("SESSION_TTL"),
			SuperAdminEmail:    viper.GetString("SUPER_ADMIN_EMAIL"),
			SuperAdminPassword: viper.GetString("SUPER_ADMIN_PASSWORD"),
			SuperAdminName:     viper.GetString("SUPER_ADMIN_NAME"),
		},
		RateLimit: RateLimitConfig{
			LoginMax:    viper.GetInt("RATE_LIMIT_LOGIN_MAX"),
			LoginWindow: viper.GetDuration("RATE_LIMIT_LOGIN_WINDOW"),
			APIMax:      viper.GetInt("RATE_LIMIT_API_MAX"),
			APIWindow:   viper.GetDuration("RATE_LIMIT_API_WINDOW"),
		},
		Objects: ObjectsConfig{
			RequirePublishedOnUpdate: viper.GetBool("OBJECTS_REQUIRE_PUBLISHED_ON_UPDATE"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			Country:        viper.GetString("MAPBOX_COUNTRY"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Worker: WorkerConfig{
			GeocodingEnabled:       viper.GetBool("WORKER_GEOCODING_ENABLED"),
			ConsumerGroup:          viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:             viper.GetInt("WORKER_MAX_RETRIES"),
			SessionCleanupEnabled:  viper.GetBool("WORKER_SESSION_CLEANUP_ENABLED"),
			SessionCleanupInterval: viper.GetDuration("WORKER_SESSION_CLEANUP_INTERVAL"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.Env == "" {
		c.Server.Env = "production"
	}
	if c.Server.AllowedOrigins == "" {
		c.Server.AllowedOrigins = "http://localhost:3000"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Cache.DictionaryCacheTTL == 0 {
		c.Cache.DictionaryCacheTTL = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = 30 * time.Minute
	}
	if c.Auth.RefreshTTL == 0 {
		c.Auth.RefreshTTL = 7 * 24 * time.Hour
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 7 * 24 * time.Hour
	}
	if c.Auth.SuperAdminName == "" {
		c.Auth.SuperAdminName = "Администратор"
	}
	if c.RateLimit.LoginMax == 0 {
		c.RateLimit.LoginMax = 5
	}
	if c.RateLimit.LoginWindow == 0 {
		c.RateLimit.LoginWindow = 15 * time.Minute
	}
	if c.RateLimit.APIMax == 0 {
		c.RateLimit.APIMax = 100
	}
	if c.RateLimit.APIWindow == 0 {
		c.RateLimit.APIWindow = time.Minute
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.Country == "" {
		c.Mapbox.Country = "kz"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = 10
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "object-geocoding-workers"
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.SessionCleanupInterval == 0 {
		c.Worker.SessionCleanupInterval = time.Hour
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// splitList разбирает список через запятую, пустые элементы отбрасываются
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
